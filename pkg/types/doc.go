// Package types defines the entity types, serialization shapes, configuration
// and standard errors for the shoppr recipe and shopping-list service.
//
// Entities only point "down" to what they own or reference directly: a Recipe
// holds its Ingredients, an Ingredient holds its BaseItem. Back-references
// (the Ingredients that use a BaseItem, the Aisles of a Shop) are resolved by
// foreign-key lookups in the store.
package types
