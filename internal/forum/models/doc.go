// Package models defines the forum entities: User, Post and Comment.
//
// Entities are built either with a New* constructor, which validates every
// field, or with a Restore* constructor, which trusts values read back from
// storage. Fields are unexported; setters re-validate their input so an
// entity never holds a value that failed a check. Identifiers never change
// after construction.
//
// Each entity maps itself to an explicit view type for JSON output. The
// user view leaves out the password hash and salt.
package models
