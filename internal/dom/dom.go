// Package dom holds the server-side page document of a page session and the
// mount points render operations write into.
//
// Nothing in this package is safe for concurrent use; callers serialize access
// to a Page (see widget.Widget).
package dom

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// MountPoint is a region of the page that a render operation may empty and repopulate.
type MountPoint interface {
	// Empty removes every child of the region.
	Empty()
	// Append parses fragment as HTML and appends it as the region's last children.
	Append(fragment string)
}

// Page is a parsed HTML document.
type Page struct {
	doc *goquery.Document
}

// NewPage parses an HTML document.
func NewPage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Page{doc: doc}, nil
}

// Region returns the element matching selector. It fails when the selector
// does not match exactly one element.
func (p *Page) Region(selector string) (*Region, error) {
	sel := p.doc.Find(selector)
	if sel.Length() != 1 {
		return nil, fmt.Errorf("selector %q matched %d elements, want 1", selector, sel.Length())
	}
	return &Region{sel: sel}, nil
}

// HTML renders the whole document.
func (p *Page) HTML() (string, error) {
	return goquery.OuterHtml(p.doc.Selection)
}

// Region is a single element of a Page. It implements MountPoint.
type Region struct {
	sel *goquery.Selection
}

// Empty removes every child of the region.
func (r *Region) Empty() {
	r.sel.Empty()
}

// Append parses fragment as HTML and appends it as the region's last children.
func (r *Region) Append(fragment string) {
	r.sel.AppendHtml(fragment)
}

// Show removes the hidden attribute.
func (r *Region) Show() {
	r.sel.RemoveAttr("hidden")
}

// Hide sets the hidden attribute.
func (r *Region) Hide() {
	r.sel.SetAttr("hidden", "")
}

// Visible reports whether the region lacks the hidden attribute.
func (r *Region) Visible() bool {
	_, hidden := r.sel.Attr("hidden")
	return !hidden
}

// ID returns the element's id attribute.
func (r *Region) ID() string {
	return r.sel.AttrOr("id", "")
}

// SetAttr sets an attribute on the region's element.
func (r *Region) SetAttr(name, value string) {
	r.sel.SetAttr(name, value)
}

// InnerHTML renders the children of the region.
func (r *Region) InnerHTML() (string, error) {
	return r.sel.Html()
}

// Find returns the descendants matching selector.
func (r *Region) Find(selector string) *goquery.Selection {
	return r.sel.Find(selector)
}

// FindByAttr returns the first descendant matching selector whose attribute
// name equals value. The value is compared literally, never interpolated into
// a selector.
func (r *Region) FindByAttr(selector, name, value string) *goquery.Selection {
	return r.sel.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(name)
		return ok && v == value
	}).First()
}

// Children returns the region's element children.
func (r *Region) Children() *goquery.Selection {
	return r.sel.Children()
}
