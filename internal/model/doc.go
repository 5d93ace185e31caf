// Package model defines the scheduling domain entities and their
// cross-entity invariants, persisted via GORM.
package model
