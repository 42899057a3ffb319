// Package navigation records which logical screens the user has
// visited, for back-button support. The stack only stores and orders
// frames; mapping a frame back to a screen load lives in the app.
package navigation

// Kind identifies a logical screen.
type Kind int

const (
	KindGrid Kind = iota // top-level library grid
	KindArtist
	KindAlbum
	KindPlaylist
	KindStarred
	KindSettings
	KindSearch
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGrid:
		return "grid"
	case KindArtist:
		return "artist"
	case KindAlbum:
		return "album"
	case KindPlaylist:
		return "playlist"
	case KindStarred:
		return "starred"
	case KindSettings:
		return "settings"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Frame is one visited screen: its kind, the parameter that screen was
// loaded with (artist name, album ID, search query...), and a title for
// breadcrumb rendering.
type Frame struct {
	Kind  Kind
	Param string
	Title string
}

// same reports whether two frames reference the same screen.
func (f Frame) same(other Frame) bool {
	return f.Kind == other.Kind && f.Param == other.Param
}

// PushOutcome reports what Push did with a frame.
type PushOutcome int

const (
	// Pushed means the frame was appended to the stack.
	Pushed PushOutcome = iota
	// Replaced means the frame replaced the top (successive searches).
	Replaced
	// Ignored means the push was dropped (duplicate of the top, or
	// suppressed after a pop).
	Ignored
)

// suppressState is the one-shot flag armed by Pop and consumed by the
// next Push: re-rendering a screen while navigating back must not
// re-push the frame that was just returned to.
type suppressState int

const (
	idle suppressState = iota
	suppressNextPush
)

// Stack is the view navigation history, root-first.
type Stack struct {
	frames   []Frame
	suppress suppressState
}

// NewStack creates an empty navigation stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push records a visited screen.
//
// When isRoot is true the whole stack is replaced by frame (entering a
// top-level view resets history). Otherwise a search frame replaces a
// search frame already on top, a frame identical to the top is dropped,
// and anything else is appended. A push immediately following Pop is
// consumed by the suppress flag and dropped regardless.
func (s *Stack) Push(frame Frame, isRoot bool) PushOutcome {
	if s.suppress == suppressNextPush {
		s.suppress = idle
		return Ignored
	}
	if isRoot {
		s.frames = []Frame{frame}
		return Pushed
	}
	if top, ok := s.top(); ok {
		if top.Kind == KindSearch && frame.Kind == KindSearch {
			s.frames[len(s.frames)-1] = frame
			return Replaced
		}
		if top.same(frame) {
			return Ignored
		}
	}
	s.frames = append(s.frames, frame)
	return Pushed
}

// Pop removes the top frame and returns the frame to re-render. The
// root frame is never removed: at depth <= 1 Pop reports false and
// leaves the stack alone. A successful Pop arms the one-shot suppress
// flag for the re-render's own Push call.
func (s *Stack) Pop() (Frame, bool) {
	if len(s.frames) <= 1 {
		return Frame{}, false
	}
	s.frames = s.frames[:len(s.frames)-1]
	s.suppress = suppressNextPush
	return s.frames[len(s.frames)-1], true
}

// Current returns the top frame, or false if the stack is empty (only
// possible before the first root push).
func (s *Stack) Current() (Frame, bool) {
	return s.top()
}

func (s *Stack) top() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Depth returns the number of frames.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// CanGoBack reports whether Pop would remove a frame.
func (s *Stack) CanGoBack() bool {
	return len(s.frames) > 1
}

// Frames returns a copy of the stack, root first.
func (s *Stack) Frames() []Frame {
	result := make([]Frame, len(s.frames))
	copy(result, s.frames)
	return result
}
