// Package dto synthesizes the declarations of the generated API from
// ingested entity types.
//
// Synthesis is a pure function of a *gen.Type. Properties follow the field
// declaration order of the entity and carry their annotations as an ordered
// list of tagged records, so every dialect renders the same metadata in the
// same order:
//
//	where, err := dto.WhereUniqueInput(t)
//	if err != nil {
//	    return err
//	}
//	args, err := dto.FindOneArgs(t, where)
//
// Builders that wrap the output of an earlier stage never synthesize it on
// their own; a missing input fails with a gen.MissingDependencyError.
package dto
