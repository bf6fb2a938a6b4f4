// Package command exposes go-command compatible command handlers that mutate
// the link-in-bio profile (theme, name, details, links, socials and the
// AI generated bio/link batch). Commands are wired by the service layer and
// can be invoked by any transport.
package command
