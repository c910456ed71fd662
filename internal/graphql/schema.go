// Package graphql exposes the catalog's read queries and create
// mutations as a GraphQL schema. Resolvers are thin adapters over the
// same repositories the REST controllers use; failures surface as
// resolver errors.
package graphql

import (
	"errors"
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/database/authors"
	"github.com/mrlokans/biblioteca/internal/database/materials"
	"github.com/mrlokans/biblioteca/internal/database/users"
	"github.com/mrlokans/biblioteca/internal/entities"
)

const (
	defaultListLimit = 10
	dateLayout       = "2006-01-02"
)

// Resolver bundles the repositories the schema resolves against.
type Resolver struct {
	Authors   *authors.Repository
	Materials *materials.Repository
	Users     *users.Repository
}

// NewSchema builds the executable schema over the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	authorTypeEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "AuthorType",
		Values: graphql.EnumValueConfigMap{
			"person":      &graphql.EnumValueConfig{Value: string(entities.AuthorTypePerson)},
			"institution": &graphql.EnumValueConfig{Value: string(entities.AuthorTypeInstitution)},
		},
	})

	materialTypeEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "MaterialType",
		Values: graphql.EnumValueConfigMap{
			"book":    &graphql.EnumValueConfig{Value: string(entities.MaterialTypeBook)},
			"article": &graphql.EnumValueConfig{Value: string(entities.MaterialTypeArticle)},
			"video":   &graphql.EnumValueConfig{Value: string(entities.MaterialTypeVideo)},
		},
	})

	materialStatusEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "MaterialStatus",
		Values: graphql.EnumValueConfigMap{
			"draft":     &graphql.EnumValueConfig{Value: string(entities.MaterialStatusDraft)},
			"published": &graphql.EnumValueConfig{Value: string(entities.MaterialStatusPublished)},
			"archived":  &graphql.EnumValueConfig{Value: string(entities.MaterialStatusArchived)},
		},
	})

	authorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Author",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: authorField(func(a entities.Author) (interface{}, error) {
					return int(a.ID), nil
				}),
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: authorField(func(a entities.Author) (interface{}, error) {
					return a.Name, nil
				}),
			},
			"city": &graphql.Field{
				Type: graphql.String,
				Resolve: authorField(func(a entities.Author) (interface{}, error) {
					if a.City == "" {
						return nil, nil
					}
					return a.City, nil
				}),
			},
			"authorType": &graphql.Field{
				Type: authorTypeEnum,
				Resolve: authorField(func(a entities.Author) (interface{}, error) {
					return string(a.AuthorType), nil
				}),
			},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: authorField(func(a entities.Author) (interface{}, error) {
					return a.CreatedAt.Format(time.RFC3339), nil
				}),
			},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: userField(func(u entities.User) (interface{}, error) {
					return int(u.ID), nil
				}),
			},
			"username": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u entities.User) (interface{}, error) {
					return u.Username, nil
				}),
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u entities.User) (interface{}, error) {
					return u.Email, nil
				}),
			},
			"isActive": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: userField(func(u entities.User) (interface{}, error) {
					return u.IsActive, nil
				}),
			},
			"isSuperuser": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: userField(func(u entities.User) (interface{}, error) {
					return u.IsSuperuser, nil
				}),
			},
		},
	})

	materialType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Material",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return int(m.ID), nil
				}),
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return m.Title, nil
				}),
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					if m.Description == "" {
						return nil, nil
					}
					return m.Description, nil
				}),
			},
			"materialType": &graphql.Field{
				Type: graphql.NewNonNull(materialTypeEnum),
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return string(m.MaterialType), nil
				}),
			},
			"status": &graphql.Field{
				Type: materialStatusEnum,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return string(m.Status), nil
				}),
			},
			"publicationDate": &graphql.Field{
				Type: graphql.String,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					if m.PublicationDate == nil {
						return nil, nil
					}
					return m.PublicationDate.Format(dateLayout), nil
				}),
			},
			"isbn": &graphql.Field{
				Type: graphql.String,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return derefString(m.ISBN), nil
				}),
			},
			"pages": &graphql.Field{
				Type: graphql.Int,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return derefInt(m.Pages), nil
				}),
			},
			"doi": &graphql.Field{
				Type: graphql.String,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return derefString(m.DOI), nil
				}),
			},
			"journalName": &graphql.Field{
				Type: graphql.String,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return derefString(m.JournalName), nil
				}),
			},
			"durationSeconds": &graphql.Field{
				Type: graphql.Int,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return derefInt(m.DurationSeconds), nil
				}),
			},
			"videoUrl": &graphql.Field{
				Type: graphql.String,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return derefString(m.VideoURL), nil
				}),
			},
			"authorId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return int(m.AuthorID), nil
				}),
			},
			"author": &graphql.Field{
				Type: authorType,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					return m.Author, nil
				}),
			},
			"uploaderId": &graphql.Field{
				Type: graphql.Int,
				Resolve: materialField(func(m entities.Material) (interface{}, error) {
					if m.UploaderID == nil {
						return nil, nil
					}
					return int(*m.UploaderID), nil
				}),
			},
		},
	})

	paginationArgs := graphql.FieldConfigArgument{
		"skip": &graphql.ArgumentConfig{
			Type:         graphql.Int,
			DefaultValue: 0,
		},
		"limit": &graphql.ArgumentConfig{
			Type:         graphql.Int,
			DefaultValue: defaultListLimit,
		},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"materials": &graphql.Field{
				Type: graphql.NewList(materialType),
				Args: paginationArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					skip, limit := paginationFromArgs(p.Args)
					return r.Materials.List(skip, limit)
				},
			},
			"material": &graphql.Field{
				Type: materialType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					material, err := r.Materials.GetByID(uint(p.Args["id"].(int)))
					if errors.Is(err, database.ErrNotFound) {
						return nil, nil // absence is a null result, not an error
					}
					if err != nil {
						return nil, err
					}
					return material, nil
				},
			},
			"authors": &graphql.Field{
				Type: graphql.NewList(authorType),
				Args: paginationArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					skip, limit := paginationFromArgs(p.Args)
					return r.Authors.List(skip, limit)
				},
			},
			"author": &graphql.Field{
				Type: authorType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					author, err := r.Authors.GetByID(uint(p.Args["id"].(int)))
					if errors.Is(err, database.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return author, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createAuthor": &graphql.Field{
				Type: authorType,
				Args: graphql.FieldConfigArgument{
					"name":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"city":       &graphql.ArgumentConfig{Type: graphql.String},
					"authorType": &graphql.ArgumentConfig{Type: authorTypeEnum},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					author := &entities.Author{
						Name: p.Args["name"].(string),
						City: optString(p.Args, "city"),
					}
					if v := optString(p.Args, "authorType"); v != "" {
						author.AuthorType = entities.AuthorType(v)
					}
					return r.Authors.Create(author)
				},
			},
			"createMaterial": &graphql.Field{
				Type: materialType,
				Args: graphql.FieldConfigArgument{
					"title":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description":     &graphql.ArgumentConfig{Type: graphql.String},
					"materialType":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(materialTypeEnum)},
					"status":          &graphql.ArgumentConfig{Type: materialStatusEnum},
					"publicationDate": &graphql.ArgumentConfig{Type: graphql.String},
					"isbn":            &graphql.ArgumentConfig{Type: graphql.String},
					"pages":           &graphql.ArgumentConfig{Type: graphql.Int},
					"doi":             &graphql.ArgumentConfig{Type: graphql.String},
					"journalName":     &graphql.ArgumentConfig{Type: graphql.String},
					"durationSeconds": &graphql.ArgumentConfig{Type: graphql.Int},
					"videoUrl":        &graphql.ArgumentConfig{Type: graphql.String},
					"authorId":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					material := &entities.Material{
						Title:           p.Args["title"].(string),
						Description:     optString(p.Args, "description"),
						MaterialType:    entities.MaterialType(p.Args["materialType"].(string)),
						ISBN:            optStringPtr(p.Args, "isbn"),
						Pages:           optIntPtr(p.Args, "pages"),
						DOI:             optStringPtr(p.Args, "doi"),
						JournalName:     optStringPtr(p.Args, "journalName"),
						DurationSeconds: optIntPtr(p.Args, "durationSeconds"),
						VideoURL:        optStringPtr(p.Args, "videoUrl"),
						AuthorID:        uint(p.Args["authorId"].(int)),
					}
					if v := optString(p.Args, "status"); v != "" {
						material.Status = entities.MaterialStatus(v)
					}
					if v := optString(p.Args, "publicationDate"); v != "" {
						date, err := time.Parse(dateLayout, v)
						if err != nil {
							return nil, fmt.Errorf("invalid publicationDate %q, expected YYYY-MM-DD", v)
						}
						material.PublicationDate = &date
					}
					// The GraphQL surface is unauthenticated, so no uploader.
					return r.Materials.Create(material, nil)
				},
			},
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Users.Register(
						p.Args["username"].(string),
						p.Args["email"].(string),
						p.Args["password"].(string),
					)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func paginationFromArgs(args map[string]interface{}) (skip, limit int) {
	skip, _ = args["skip"].(int)
	limit, _ = args["limit"].(int)
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return skip, limit
}

func optString(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func optStringPtr(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optIntPtr(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func authorField(fn func(entities.Author) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch a := p.Source.(type) {
		case entities.Author:
			return fn(a)
		case *entities.Author:
			if a != nil {
				return fn(*a)
			}
		}
		return nil, nil
	}
}

func userField(fn func(entities.User) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch u := p.Source.(type) {
		case entities.User:
			return fn(u)
		case *entities.User:
			if u != nil {
				return fn(*u)
			}
		}
		return nil, nil
	}
}

func materialField(fn func(entities.Material) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch m := p.Source.(type) {
		case entities.Material:
			return fn(m)
		case *entities.Material:
			if m != nil {
				return fn(*m)
			}
		}
		return nil, nil
	}
}

func derefString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func derefInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}
