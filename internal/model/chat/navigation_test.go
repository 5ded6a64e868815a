package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigationPath(t *testing.T) {
	nav := NewNavigation(ViewSearch, map[string]string{"location": "pune"})
	assert.Equal(t, "/search?location=pune", nav.Path)

	plain := NewNavigation(ViewContact, nil)
	assert.Equal(t, "/contact", plain.Path)
}

func TestNavigationUnknownViewHasNoPath(t *testing.T) {
	nav := NewNavigation(View("nowhere"), nil)
	assert.False(t, nav.View.Known())
	assert.Empty(t, nav.Path)
}

func TestMessageCloneIsIndependent(t *testing.T) {
	nav := NewNavigation(ViewSearch, map[string]string{"location": "pune"})
	msg := Message{Text: "hi", Suggestions: []string{"a"}, Navigation: &nav}

	cp := msg.Clone()
	cp.Suggestions[0] = "b"
	cp.Navigation.Params["location"] = "delhi"

	assert.Equal(t, "a", msg.Suggestions[0])
	assert.Equal(t, "pune", msg.Navigation.Params["location"])
}
