package gitlab

import (
	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/forge"
)

// Gists adapts Client onto forge.CodeGist. GitLab's snippet API has no
// project-scoped listing this client wires up; List reports unsupported
// and NumPages/NumResources return nil with no error.
type Gists struct{ *Client }

func (g Gists) List(forge.ListBodyArgs) ([]forge.Gist, error) {
	return nil, &errorsx.OperationNotSupportedError{Provider: "gitlab", Operation: "list_gists"}
}

func (g Gists) NumPages(forge.ListBodyArgs) (*int, error) { return nil, nil }

func (g Gists) NumResources(forge.ListBodyArgs) (*forge.NumberDeltaErr, error) { return nil, nil }
