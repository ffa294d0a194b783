package mtl

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// DefaultNamePrefix is prepended to the usage counter to form new names.
const DefaultNamePrefix = "mat"

// CommentPolicy controls what happens to comment lines of the geometry text.
type CommentPolicy string

const (
	// CommentsKeep copies comment lines through unchanged.
	CommentsKeep CommentPolicy = "keep"

	// CommentsStrip drops comment lines from the rewritten geometry text.
	CommentsStrip CommentPolicy = "strip"
)

// IsValid returns true if the policy is known.
func (c CommentPolicy) IsValid() bool {
	switch c {
	case CommentsKeep, CommentsStrip:
		return true
	default:
		return false
	}
}

// Options configures a Rewriter.
type Options struct {
	// NamePrefix forms new material names as NamePrefix + counter.
	NamePrefix string

	// Comments selects the comment line policy for the geometry text.
	Comments CommentPolicy

	// MaxNameLength bounds usage names, in bytes.
	MaxNameLength int
}

// DefaultOptions returns the options matching the classic mtlsort behavior.
func DefaultOptions() Options {
	return Options{
		NamePrefix:    DefaultNamePrefix,
		Comments:      CommentsKeep,
		MaxNameLength: DefaultMaxNameLength,
	}
}

// Output is the result of a rewrite.
type Output struct {
	Geometry []byte
	Material []byte
	Plan     *Plan
}

// Rewriter reorders material declarations to match usage order.
// It holds no state between calls and is safe to reuse.
type Rewriter struct {
	opts Options
}

// New creates a Rewriter. Zero fields in opts take their defaults.
func New(opts Options) *Rewriter {
	defaults := DefaultOptions()
	if opts.NamePrefix == "" {
		opts.NamePrefix = defaults.NamePrefix
	}
	if opts.Comments == "" {
		opts.Comments = defaults.Comments
	}
	if opts.MaxNameLength <= 0 {
		opts.MaxNameLength = defaults.MaxNameLength
	}
	return &Rewriter{opts: opts}
}

// Options returns the effective options.
func (r *Rewriter) Options() Options {
	return r.opts
}

// Plan scans both texts and resolves every usage to a declaration.
func (r *Rewriter) Plan(geometry, material []byte) (*Plan, error) {
	decls := IndexDeclarations(material)

	usages, err := ScanUsages(geometry, r.opts.MaxNameLength)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Entries:      make([]PlanEntry, 0, len(usages)),
		Declarations: decls,
		Names:        make([]string, len(decls)),
	}
	for idx, decl := range decls {
		plan.Names[idx] = decl.Name(material)
	}
	for _, usage := range usages {
		idx, ok := decls.Resolve(material, usage.Name)
		if !ok {
			return nil, &UnresolvedUsageError{Name: usage.Name, Line: usage.Line}
		}
		plan.Entries = append(plan.Entries, PlanEntry{
			Usage:       usage,
			Declaration: idx,
			SourceName:  plan.Names[idx],
			NewName:     r.opts.NamePrefix + strconv.Itoa(usage.Index),
		})
	}

	return plan, nil
}

// Rewrite builds the rewritten geometry and material texts. Nothing is
// produced unless every usage resolves.
func (r *Rewriter) Rewrite(geometry, material []byte) (*Output, error) {
	plan, err := r.Plan(geometry, material)
	if err != nil {
		return nil, err
	}

	return &Output{
		Geometry: r.emitGeometry(geometry, plan),
		Material: emitMaterial(material, plan),
		Plan:     plan,
	}, nil
}

// Transform rewrites both texts and writes them to the given writers. The
// writers are not touched if the rewrite fails.
func (r *Rewriter) Transform(geometry, material []byte, geometryW, materialW io.Writer) error {
	out, err := r.Rewrite(geometry, material)
	if err != nil {
		return err
	}

	if _, err := geometryW.Write(out.Geometry); err != nil {
		return fmt.Errorf("write geometry: %w", err)
	}
	if _, err := materialW.Write(out.Material); err != nil {
		return fmt.Errorf("write material: %w", err)
	}

	return nil
}

// Transform rewrites an OBJ/MTL pair with DefaultOptions.
func Transform(geometry, material []byte, geometryW, materialW io.Writer) error {
	return New(DefaultOptions()).Transform(geometry, material, geometryW, materialW)
}

func (r *Rewriter) emitGeometry(geometry []byte, plan *Plan) []byte {
	var buf bytes.Buffer
	buf.Grow(len(geometry))

	next := 0
	for _, line := range Lines(geometry) {
		switch classifyLine(line.Content(geometry)) {
		case lineComment:
			if r.opts.Comments == CommentsStrip {
				continue
			}
		case lineUsage:
			buf.WriteString(UsageKeyword)
			buf.WriteByte(' ')
			buf.WriteString(plan.Entries[next].NewName)
			buf.WriteByte('\n')
			next++
			continue
		case lineOther:
		}

		buf.Write(geometry[line.Start:line.Next])
	}

	return buf.Bytes()
}

// emitMaterial writes the preamble, then one declaration per plan entry.
func emitMaterial(material []byte, plan *Plan) []byte {
	var buf bytes.Buffer
	buf.Grow(len(material))

	buf.Write(plan.Declarations.Preamble(material))

	for idx, entry := range plan.Entries {
		body := plan.Declarations[entry.Declaration].Body(material)

		buf.WriteString(DeclarationKeyword)
		buf.WriteByte(' ')
		buf.WriteString(entry.NewName)
		buf.Write(body)

		// A body cut off at the end of the file would run into the next header.
		if idx < len(plan.Entries)-1 && !endsWithLineBreak(body) {
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}
