// Package domain defines the core business entities of the learning
// platform and their validation rules. Entities are plain structs with
// no persistence or transport concerns.
package domain
