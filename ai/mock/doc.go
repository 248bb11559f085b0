// Package mock provides test doubles for the ai collaborator interfaces.
// The doubles are deterministic by default and allow behavior injection
// through function fields.
package mock
