package sexy

import "fmt"

// MismatchError describes the first place where a tree differs from a
// pattern. Path is a slash-separated list of item indexes from the root.
type MismatchError struct {
	Path   string
	Want   *Node
	Got    *Node
	Reason string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("at %s: %s (want %s, got %s)", e.Path, e.Reason, e.Want, e.Got)
}

// Match reports whether got has the shape of pattern. Atoms must be equal in
// type and text. A "..." item in a pattern list matches zero or more of the
// remaining items of the corresponding list.
func Match(pattern, got *Node) error {
	return match(pattern, got, "root")
}

func match(pattern, got *Node, path string) error {
	if pattern.Type == NodeEllipsis {
		return nil
	}
	if got == nil {
		return &MismatchError{Path: path, Want: pattern, Got: NewSymbol("<nil>"), Reason: "missing node"}
	}
	if pattern.Type != got.Type {
		return &MismatchError{Path: path, Want: pattern, Got: got,
			Reason: fmt.Sprintf("expected %s, got %s", pattern.Type, got.Type)}
	}
	if pattern.IsAtom() {
		if pattern.Text != got.Text {
			return &MismatchError{Path: path, Want: pattern, Got: got, Reason: "atom differs"}
		}
		return nil
	}

	for i, item := range pattern.Items {
		if item.Type == NodeEllipsis {
			return nil
		}
		if i >= len(got.Items) {
			return &MismatchError{Path: path, Want: pattern, Got: got,
				Reason: fmt.Sprintf("list has %d items, pattern needs more", len(got.Items))}
		}
		if err := match(item, got.Items[i], fmt.Sprintf("%s/%d", path, i)); err != nil {
			return err
		}
	}
	if len(got.Items) != len(pattern.Items) {
		return &MismatchError{Path: path, Want: pattern, Got: got,
			Reason: fmt.Sprintf("list has %d items, pattern has %d", len(got.Items), len(pattern.Items))}
	}
	return nil
}
