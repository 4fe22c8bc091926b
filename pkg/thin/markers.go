package thin

// Marker capabilities. An annotated interface embeds the ones its
// implementations guarantee, and the generated handle carries the matching
// Mark method so it satisfies the same interface.
//
// Send and Sync are unsafe markers: the generator cannot check them, the
// implementer vouches for them.
type (
	// Send marks values that may be handed to another goroutine.
	Send interface{ MarkSend() }
	// Sync marks values that may be used from several goroutines at once.
	Sync interface{ MarkSync() }
	// Unpin marks values that tolerate being moved after boxing.
	Unpin interface{ MarkUnpin() }
	// UnwindSafe marks values that stay consistent across a recovered panic.
	UnwindSafe interface{ MarkUnwindSafe() }
	// RefUnwindSafe marks values whose shared views stay consistent across a recovered panic.
	RefUnwindSafe interface{ MarkRefUnwindSafe() }
)

// Static constrains an interface to implementations that never borrow
// shorter-lived data. Handles of such interfaces carry no Lifetime field.
type Static interface{ MarkStatic() }

// Markers can be embedded into an implementation to satisfy every marker
// capability at once.
type Markers struct{}

func (Markers) MarkSend()          {}
func (Markers) MarkSync()          {}
func (Markers) MarkUnpin()         {}
func (Markers) MarkUnwindSafe()    {}
func (Markers) MarkRefUnwindSafe() {}
func (Markers) MarkStatic()        {}

// NoCopy is embedded in generated handles. It is zero-sized and makes
// go vet's copylocks check flag accidental copies of an owning handle.
type NoCopy struct{}

func (*NoCopy) Lock()   {}
func (*NoCopy) Unlock() {}

// Lifetime is a zero-sized field recording that a handle may refer to data
// it does not own for the whole program run.
type Lifetime struct {
	_ [0]func()
}
