// Package interfaces collects the collaborator contracts shared by blockgen
// packages so hosts can supply their own implementations.
package interfaces
