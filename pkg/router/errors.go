package router

import "errors"

// Sentinel errors returned by Table, translated by Router into the
// richer *rerrors.RouterError values the administrative surface and
// callers expect (which need the route name or priority value the
// Table layer itself does not carry).
var (
	errNameExists    = errors.New("router: route name already exists")
	errPriorityTaken = errors.New("router: priority already taken")
	errNotFound      = errors.New("router: route not found")
)
