// Package graphql exposes a read-only query surface over customers,
// products, orders and allergens. Mutations stay on the REST API, where
// the order total invariants are enforced.
package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
)

// NewSchema builds the query schema backed by the given database handle.
func NewSchema(db *gorm.DB) (graphql.Schema, error) {
	customers := repositories.NewCustomerRepository(db)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)
	allergens := repositories.NewAllergenRepository(db)

	allergenType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Allergen",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (any, error) {
				return int(p.Source.(models.Allergen).ID), nil
			}},
			"allergenName": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Allergen).AllergenName, nil
			}},
			"displayName": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				a := p.Source.(models.Allergen)
				return a.DisplayName(), nil
			}},
			"description": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Allergen).Description, nil
			}},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (any, error) {
				return int(p.Source.(models.Product).ID), nil
			}},
			"productName": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).ProductName, nil
			}},
			"productPrice": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).ProductPrice.StringFixed(2), nil
			}},
			"productType": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).ProductType, nil
			}},
			"productSuitability": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).ProductSuitability, nil
			}},
			"isActive": &graphql.Field{Type: graphql.Boolean, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).IsActive, nil
			}},
			"allergens": &graphql.Field{Type: graphql.NewList(allergenType), Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Product).Allergens, nil
			}},
		},
	})

	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (any, error) {
				return int(p.Source.(models.Customer).ID), nil
			}},
			"fullName": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Customer).FullName, nil
			}},
			"firstName": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Customer).FirstName, nil
			}},
			"lastName": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Customer).LastName, nil
			}},
			"phoneNumber": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Customer).PhoneNumber, nil
			}},
			"email": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Customer).Email, nil
			}},
		},
	})

	lineItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderLineItem",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (any, error) {
				return int(p.Source.(models.OrderLineItem).ID), nil
			}},
			"productId": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (any, error) {
				return int(p.Source.(models.OrderLineItem).ProductID), nil
			}},
			"product": &graphql.Field{Type: productType, Resolve: func(p graphql.ResolveParams) (any, error) {
				li := p.Source.(models.OrderLineItem)
				if li.Product == nil {
					return nil, nil
				}
				return *li.Product, nil
			}},
			"quantity": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.OrderLineItem).Quantity, nil
			}},
			"unitPrice": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.OrderLineItem).UnitPrice.StringFixed(2), nil
			}},
			"lineTotal": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				li := p.Source.(models.OrderLineItem)
				return li.LineTotal().StringFixed(2), nil
			}},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (any, error) {
				return int(p.Source.(models.Order).ID), nil
			}},
			"customer": &graphql.Field{Type: customerType, Resolve: func(p graphql.ResolveParams) (any, error) {
				o := p.Source.(models.Order)
				if o.Customer == nil {
					return nil, nil
				}
				return *o.Customer, nil
			}},
			"totalPrice": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Order).TotalPrice.StringFixed(2), nil
			}},
			"methodOfPayment": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Order).MethodOfPayment, nil
			}},
			"status": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Order).Status, nil
			}},
			"orderPlaced": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Order).OrderPlaced.Format(time.RFC3339), nil
			}},
			"comments": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Order).Comments, nil
			}},
			"lineItems": &graphql.Field{Type: graphql.NewList(lineItemType), Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(models.Order).LineItems, nil
			}},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"customer": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return customers.FindByID(uint(p.Args["id"].(int)))
				},
			},
			"customers": &graphql.Field{
				Type: graphql.NewList(customerType),
				Args: graphql.FieldConfigArgument{
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					search, _ := p.Args["search"].(string)
					return customers.All(search)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return products.FindByID(uint(p.Args["id"].(int)))
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"search":      &graphql.ArgumentConfig{Type: graphql.String},
					"type":        &graphql.ArgumentConfig{Type: graphql.String},
					"suitability": &graphql.ArgumentConfig{Type: graphql.String},
					"activeOnly":  &graphql.ArgumentConfig{Type: graphql.Boolean},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					search, _ := p.Args["search"].(string)
					productType, _ := p.Args["type"].(string)
					suitability, _ := p.Args["suitability"].(string)
					activeOnly, _ := p.Args["activeOnly"].(bool)
					return products.All(repositories.ProductFilters{
						Search:      search,
						Type:        productType,
						Suitability: suitability,
						ActiveOnly:  activeOnly,
					})
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return orders.FindByID(uint(p.Args["id"].(int)))
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"customer": &graphql.ArgumentConfig{Type: graphql.Int},
					"status":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					customerID, _ := p.Args["customer"].(int)
					status, _ := p.Args["status"].(string)
					return orders.All(repositories.OrderFilters{
						CustomerID: uint(customerID),
						Status:     status,
					})
				},
			},
			"allergens": &graphql.Field{
				Type: graphql.NewList(allergenType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return allergens.All()
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
