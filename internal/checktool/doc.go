// Package checktool defines the capability contract implemented by every
// auditing and formatting plugin, the FileResult model produced when a plugin
// inspects a target, and the immutable registry that exposes registered
// plugins by name.
package checktool
