// Package gen ingests entity definitions for code generation.
//
// This package is the first stage of the generation pipeline. It turns the
// designer's stored definitions into a validated, normalized representation
// that the DTO synthesizer works on:
//
//	schema.Entity (designer storage)
//	        ↓
//	   gen.NewType / gen.NewGraph (ingestion)
//	        ↓
//	   dto.Synthesize (declarations)
//	        ↓
//	   render.Emitter (source text)
//
// # Key Types
//
//   - Graph: the valid types of one generation run and the failures of the others
//   - Type: an entity with its identifier, ordered fields and permissions
//   - Field: a field with its data type, nullability, uniqueness and relation
//   - Config: the configuration of a run, built with functional options
//
// # Error Handling
//
// The package defines the error taxonomy of the whole pipeline:
//
//   - SchemaError: the entity definition is structurally invalid
//   - MissingDependencyError: a stage ran before the stage it depends on
//   - RenderError: a declaration references an undeclared type
//   - ConfigError: invalid configuration option
//   - GenerationError: assembling, validating or writing output failed
//
// Every error type matches its sentinel with errors.Is:
//
//	graph, err := gen.NewGraph(config, entities...)
//	if errors.Is(err, gen.ErrInvalidSchema) {
//	    // graph.Nodes still holds every valid entity.
//	}
//
// None of these errors are retried; ingestion, synthesis and emission are pure,
// so the same input reproduces the same failure.
//
// # Configuration
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./generated"),
//	    gen.WithDialects(gen.DialectNest, gen.DialectGraphQL),
//	    gen.WithFeatures(gen.FeatureCache),
//	)
package gen
