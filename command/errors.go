package command

import (
	"errors"

	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

var (
	// ErrMissingProfileRepository indicates the command has no storage backend.
	ErrMissingProfileRepository = types.ErrMissingProfileRepository
	// ErrMissingLinkIDGenerator indicates the generated content command cannot mint link ids.
	ErrMissingLinkIDGenerator = errors.New("linkbio: missing link id generator")
	// ErrLinkIDRequired occurs when a link command omits the link id.
	ErrLinkIDRequired = errors.New("linkbio: link id required")
	// ErrLinkNotFound indicates no link matches the supplied id.
	ErrLinkNotFound = types.ErrLinkNotFound
	// ErrEmptyPatch indicates an update carried no fields.
	ErrEmptyPatch = errors.New("linkbio: update carries no changes")
)
