package scope

// TemplateData identifies one template taking part in the render: the
// template name plus the attributes used to resolve it. One TemplateData is
// pushed per nested template entered; the top of the stack is the template
// currently executing.
type TemplateData struct {
	// Name is the resolved template name.
	Name string
	// ResolutionAttributes are the attributes the template was resolved
	// with. May be nil.
	ResolutionAttributes map[string]any
}

// ElementTag marks an element currently open in the template being
// processed. Implementations typically carry markup position information for
// diagnostics; the scope only records and reports them.
type ElementTag interface {
	// TagName returns the element name as written in the template.
	TagName() string
}

// Inliner performs text inlining on template output. The scope only stores
// the active inliner; invoking it is the render pipeline's business.
type Inliner interface {
	// Name identifies the inliner in diagnostics.
	Name() string
	// Inline processes a fragment of template text.
	Inline(text string) (string, error)
}

// templateFrame pairs a template identity with the level it was entered at.
type templateFrame struct {
	data  *TemplateData
	level int
}

// elementFrame pairs an open element tag with the level it was recorded at.
type elementFrame struct {
	tag   ElementTag
	level int
}

// SetTemplateData records td as the template executing at the current level.
// Entering a nested template implies a level increase performed by the
// caller in lockstep, so a frame already recorded at the current level is
// replaced rather than stacked.
func (s *Scope) SetTemplateData(td *TemplateData) {
	if td == nil {
		return
	}

	if n := len(s.templates); n > 0 && s.templates[n-1].level == s.level {
		s.templates[n-1].data = td

		return
	}

	s.templates = append(s.templates, templateFrame{data: td, level: s.level})
}

// TemplateData returns the identity of the template currently executing, or
// nil before any template has been recorded.
func (s *Scope) TemplateData() *TemplateData {
	if len(s.templates) == 0 {
		return nil
	}

	return s.templates[len(s.templates)-1].data
}

// TemplateStack returns the templates entered so far, outermost first. The
// returned slice is a copy.
func (s *Scope) TemplateStack() []*TemplateData {
	stack := make([]*TemplateData, len(s.templates))
	for i, frame := range s.templates {
		stack[i] = frame.data
	}

	return stack
}

// SetElementTag records tag as the element open at the current level,
// replacing any tag previously recorded at this level.
func (s *Scope) SetElementTag(tag ElementTag) {
	if n := len(s.elements); n > 0 && s.elements[n-1].level == s.level {
		s.elements[n-1].tag = tag

		return
	}

	s.elements = append(s.elements, elementFrame{tag: tag, level: s.level})
}

// ElementStack returns all element tags currently open, outermost first. The
// returned slice is a copy.
func (s *Scope) ElementStack() []ElementTag {
	return s.elementStackAbove(-1)
}

// ElementStackAbove returns only the element tags recorded at levels
// strictly greater than the given level, outermost first. Diagnostics use
// this to show the tags opened within the current nested fragment.
func (s *Scope) ElementStackAbove(level int) []ElementTag {
	return s.elementStackAbove(level)
}

func (s *Scope) elementStackAbove(level int) []ElementTag {
	stack := make([]ElementTag, 0, len(s.elements))

	for _, frame := range s.elements {
		if frame.level > level {
			stack = append(stack, frame.tag)
		}
	}

	return stack
}
