// Package source implements the configuration sources a secret is resolved from:
// dotenv files, Gradle-style properties files, prefixed environment variables and
// static maps built from command-line flags.
//
// Every source loads its data once when it is constructed and answers lookups from
// memory afterwards. A missing or unreadable backing file is not an error: the source
// simply answers "absent" for every key.
package source
