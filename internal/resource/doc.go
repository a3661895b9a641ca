// Package resource renders resolved values as generated, read-only resources for the
// packaging step: Android res/values XML, a flat YAML mapping, or KEY=VALUE lines.
package resource
