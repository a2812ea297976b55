package nest

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/zongruxie4/amplication/compiler/gen/dto"
)

// Modules of the symbols used by rendered declarations.
const (
	ModuleGraphQL       = "@nestjs/graphql"
	ModuleSwagger       = "@nestjs/swagger"
	ModuleValidator     = "class-validator"
	ModuleTransformer   = "class-transformer"
	ModuleJSON          = "graphql-type-json"
	ModuleAccessControl = "nest-access-control"
	ModuleTypes         = "../../types"
	ModuleValidators    = "../../validators"
	ModulePublic        = "../../decorators/public.decorator"
	ModuleRoles         = "../../decorators/roles.decorator"
)

// Imports returns the import statements of a file holding decls. Declared
// types that are referenced but not part of decls are imported from the
// module returned by locate; an empty module leaves the type out.
func Imports(decls []*dto.Declaration, locate func(name string) string) []string {
	im := &imports{
		named:     make(map[string]map[string]bool),
		namespace: make(map[string]string),
	}
	local := make(map[string]bool, len(decls))
	for _, d := range decls {
		local[d.Name] = true
	}
	for _, d := range decls {
		im.declaration(d)
		for _, ref := range d.References() {
			if !local[ref] {
				im.add(locate(ref), ref)
			}
		}
		if d.Kind == dto.KindResolver && len(d.Operations) > 0 {
			service := resource(d) + "Service"
			im.add(locate(service), service)
		}
	}
	return im.lines()
}

type imports struct {
	named     map[string]map[string]bool
	namespace map[string]string
}

func (im *imports) add(module, name string) {
	if module == "" {
		return
	}
	if im.named[module] == nil {
		im.named[module] = make(map[string]bool)
	}
	im.named[module][name] = true
}

func (im *imports) declaration(d *dto.Declaration) {
	for _, a := range d.Annotations {
		if a.Kind != dto.Exposure {
			continue
		}
		switch d.Kind {
		case dto.KindArgs:
			im.add(ModuleGraphQL, "ArgsType")
		case dto.KindInput:
			im.add(ModuleGraphQL, "InputType")
		case dto.KindObject:
			im.add(ModuleGraphQL, "ObjectType")
		case dto.KindResolver:
			im.namespace["graphql"] = ModuleGraphQL
		}
	}
	if d.Kind == dto.KindEnum {
		im.add(ModuleGraphQL, "registerEnumType")
	}
	for _, p := range d.Properties {
		if p.Type.Scalar == dto.ScalarJSON {
			im.add(ModuleTypes, jsonType(d))
		}
		for _, a := range p.Annotations {
			im.annotation(a)
		}
	}
	for _, op := range d.Operations {
		im.namespace["graphql"] = ModuleGraphQL
		for _, a := range op.Annotations {
			switch a.Rule {
			case dto.RulePublic:
				im.add(ModulePublic, "Public")
			case dto.RuleRoles:
				im.add(ModuleRoles, "Roles")
			case dto.RuleAnyRole:
				im.namespace["nestAccessControl"] = ModuleAccessControl
			}
		}
		if op.Returns.Scalar != dto.ScalarNone {
			im.scalar(op.Returns)
		}
	}
}

func (im *imports) annotation(a dto.Annotation) {
	switch a.Kind {
	case dto.Documentation:
		im.add(ModuleSwagger, "ApiProperty")
	case dto.Validation:
		if a.Check == dto.CheckJSON {
			im.add(ModuleValidators, validator(a.Check))
		} else {
			im.add(ModuleValidator, validator(a.Check))
		}
	case dto.Transform:
		im.add(ModuleTransformer, "Type")
	case dto.Optional:
		im.add(ModuleValidator, "IsOptional")
	case dto.Exposure:
		im.add(ModuleGraphQL, "Field")
		im.scalar(a.Type)
	}
}

// scalar imports the GraphQL type of scalars that are not JavaScript globals.
func (im *imports) scalar(r dto.TypeRef) {
	switch r.Scalar {
	case dto.ScalarInt:
		im.add(ModuleGraphQL, "Int")
	case dto.ScalarFloat:
		im.add(ModuleGraphQL, "Float")
	case dto.ScalarJSON:
		im.add(ModuleJSON, "GraphQLJSON")
	}
}

// lines renders namespace imports first, then named imports, each sorted by
// module and name.
func (im *imports) lines() []string {
	var lines []string
	for _, alias := range slices.Sorted(maps.Keys(im.namespace)) {
		lines = append(lines, fmt.Sprintf("import * as %s from %q;", alias, im.namespace[alias]))
	}
	for _, module := range slices.Sorted(maps.Keys(im.named)) {
		names := slices.Sorted(maps.Keys(im.named[module]))
		lines = append(lines, fmt.Sprintf("import { %s } from %q;", strings.Join(names, ", "), module))
	}
	return lines
}
