package lottiecore

import "fmt"

// --- Decode errors ---

// InvalidValueError reports a malformed scalar value during decode.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

// InvalidColorError reports a color string that matches none of the
// supported textual conventions.
type InvalidColorError struct {
	Value  string
	Reason string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q: %s", e.Value, e.Reason)
}

// TypeMismatchError reports a property value whose wire shape matches
// none of the types the coercion rule tries, per spec §4.1.
type TypeMismatchError struct {
	Field   string
	Wanted  string
	Got     string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %s: wanted %s, got %s", e.Field, e.Wanted, e.Got)
}

// MissingFieldError reports an unset mandatory field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// UnsupportedLayerKindError reports a layer content "ty" discriminator
// with no registered decoder.
type UnsupportedLayerKindError struct {
	Ty int
}

func (e *UnsupportedLayerKindError) Error() string {
	return fmt.Sprintf("unsupported layer kind ty=%d", e.Ty)
}

// UnsupportedShapeKindError reports a shape-layer "ty" discriminator with
// no registered decoder.
type UnsupportedShapeKindError struct {
	Ty string
}

func (e *UnsupportedShapeKindError) Error() string {
	return fmt.Sprintf("unsupported shape kind ty=%q", e.Ty)
}

// --- Link errors ---

// AssetNotFoundError reports a precomposition/media reference whose
// ref_id has no matching asset. The builder skips the reference rather
// than aborting (spec §7); this error is collected via multierr, not
// returned as the sole build failure.
type AssetNotFoundError struct {
	RefID string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("asset not found: ref_id=%q", e.RefID)
}

// ParentNotFoundError reports a parent_index left unresolved at the end
// of the build.
type ParentNotFoundError struct {
	Index int
}

func (e *ParentNotFoundError) Error() string {
	return fmt.Sprintf("parent not found: index=%d", e.Index)
}

// --- Text errors ---

// FontFamilyNotFoundError reports a text document referencing a font
// name absent from the document's font list.
type FontFamilyNotFoundError struct {
	Name string
}

func (e *FontFamilyNotFoundError) Error() string {
	return fmt.Sprintf("font family not found: %q", e.Name)
}

// FontNotLoadedError reports a font the FontDB could not supply (the
// lookup missed, or no FontDB was installed) or whose handle failed to
// load.
type FontNotLoadedError struct {
	Name string
}

func (e *FontNotLoadedError) Error() string {
	return fmt.Sprintf("font not loaded: %q", e.Name)
}

// FontGlyphNotFoundError reports a character absent from a loaded font's
// glyph table.
type FontGlyphNotFoundError struct {
	Name string
	Char rune
}

func (e *FontGlyphNotFoundError) Error() string {
	return fmt.Sprintf("font %q has no glyph for %q", e.Name, e.Char)
}

// --- Evaluation errors ---

// ShapeTopologyChangeError reports two Bezier-list keyframes with
// differing vertex counts, which cannot be interpolated (spec §4.4).
type ShapeTopologyChangeError struct {
	From, To int
}

func (e *ShapeTopologyChangeError) Error() string {
	return fmt.Sprintf("shape topology change: %d vertices to %d vertices", e.From, e.To)
}
