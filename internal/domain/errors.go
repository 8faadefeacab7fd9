package domain

import "errors"

// Domain errors.
var (
	ErrRepoPathNotFound  = errors.New("repository path does not exist")
	ErrExternalCommand   = errors.New("external command failed")
	ErrDeserialize       = errors.New("failed to deserialize issue metadata")
	ErrWrite             = errors.New("failed to write artifact")
	ErrUnknownTriageKind = errors.New("unknown triage kind")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidBackend    = errors.New("invalid fetch backend")
	ErrInvalidTeamLabel  = errors.New("team label must start with " + TeamLabelPrefix)
	ErrRemoteNotFound    = errors.New("no GitHub remote found")
	ErrMissingToken      = errors.New("GitHub token not set (GH_TOKEN or GITHUB_TOKEN)")
	ErrConfigNil         = errors.New("config is nil")
)
