package shops

// EditState is the state of a shop form: Empty, Editing or Creating.
type EditState interface {
	isEditState()
}

// Empty is a form with nothing typed into it.
type Empty struct{}

// Editing holds changes to the existing shop with the given ID.
type Editing struct {
	ID    string
	Draft Draft
}

// Creating holds the fields of a shop that does not exist yet.
type Creating struct {
	Draft Draft
}

func (Empty) isEditState()    {}
func (Editing) isEditState()  {}
func (Creating) isEditState() {}

// Form is the create-or-update edit buffer for a single shop.
type Form struct {
	state EditState
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{state: Empty{}}
}

// FormFor returns a form already in state.
func FormFor(state EditState) *Form {
	if state == nil {
		state = Empty{}
	}
	return &Form{state: state}
}

// State reports the current edit state.
func (f *Form) State() EditState {
	return f.state
}

// Change applies fn to the draft. An empty form starts creating a new shop.
func (f *Form) Change(fn func(*Draft)) {
	switch s := f.state.(type) {
	case Editing:
		fn(&s.Draft)
		f.state = s
	case Creating:
		fn(&s.Draft)
		f.state = s
	default:
		var d Draft
		fn(&d)
		f.state = Creating{Draft: d}
	}
}

// Reset clears the form.
func (f *Form) Reset() {
	f.state = Empty{}
}

// SubmitLabel is the caption of the form's submit button.
func (f *Form) SubmitLabel() string {
	if _, ok := f.state.(Editing); ok {
		return "Update Shop"
	}
	return "Add Shop"
}

// Draft returns the fields currently held by the form.
func (f *Form) Draft() Draft {
	switch s := f.state.(type) {
	case Editing:
		return s.Draft
	case Creating:
		return s.Draft
	default:
		return Draft{}
	}
}
