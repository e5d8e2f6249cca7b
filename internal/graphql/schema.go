// Package graphql реализует GraphQL-поверхность сервиса проката поверх тех же
// сервисов, что и REST. Схема повторяет оригинальный контракт: запросы по
// пользователям, автомобилям и арендам плюс мутации регистрации, входа,
// добавления автомобиля и создания аренды.
//
// Мутация createRental требует аутентификации: пользователь берётся из
// контекста запроса, куда его кладёт WithAuthContext по bearer-токену.
package graphql

import (
	"context"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
)

// AuthService — операции аутентификации, используемые схемой.
type AuthService interface {
	Register(ctx context.Context, name, email, nationalID, rawPassword string) (*domain.User, error)
	Login(ctx context.Context, email, rawPassword string) (string, *domain.User, error)
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.PublicUser, error)
	GetUserByID(ctx context.Context, id string) (*domain.PublicUser, error)
}

// CarService — операции над парком автомобилей, используемые схемой.
type CarService interface {
	Register(ctx context.Context, brand, model string, year int, plate string, dailyRate float64) (*domain.Car, error)
	ListAvailable(ctx context.Context) ([]*domain.Car, error)
	GetByID(ctx context.Context, id string) (*domain.Car, error)
}

// RentalService — операции над журналом аренды, используемые схемой.
type RentalService interface {
	Create(ctx context.Context, userID, carID string, startDate, expectedEndDate time.Time) (*domain.Rental, error)
	ListAll(ctx context.Context) ([]*domain.Rental, error)
	GetByID(ctx context.Context, rentalID string) (*domain.Rental, error)
}

type rentalView struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	CarID           string  `json:"carId"`
	StartDate       string  `json:"startDate"`
	ExpectedEndDate string  `json:"expectedEndDate"`
	ActualEndDate   *string `json:"actualEndDate"`
}

func toRentalView(r *domain.Rental) rentalView {
	v := rentalView{
		ID:              r.ID,
		UserID:          r.UserID,
		CarID:           r.CarID,
		StartDate:       r.StartDate.Format(time.RFC3339),
		ExpectedEndDate: r.ExpectedEndDate.Format(time.RFC3339),
	}
	if r.ActualEndDate != nil {
		end := r.ActualEndDate.Format(time.RFC3339)
		v.ActualEndDate = &end
	}
	return v
}

// NewSchema строит GraphQL-схему поверх переданных сервисов.
func NewSchema(auth AuthService, cars CarService, rentals RentalService) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"nationalId": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (any, error) {
				switch u := p.Source.(type) {
				case domain.PublicUser:
					return u.NationalID, nil
				case *domain.PublicUser:
					return u.NationalID, nil
				}
				return nil, nil
			}},
		},
	})

	carType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Car",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"brand":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"model":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"year":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"plate":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"dailyRate":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"isAvailable": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	rentalType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Rental",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"carId":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"startDate":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"expectedEndDate": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"actualEndDate":   &graphql.Field{Type: graphql.String},
		},
	})

	authPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":    &graphql.Field{Type: userType},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	userPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserPayload",
		Fields: graphql.Fields{
			"user":    &graphql.Field{Type: userType},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	carPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CarPayload",
		Fields: graphql.Fields{
			"car":     &graphql.Field{Type: carType},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	rentalPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "RentalPayload",
		Fields: graphql.Fields{
			"rental":  &graphql.Field{Type: rentalType},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return auth.ListUsers(p.Context)
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					return auth.GetUserByID(p.Context, id)
				},
			},
			"cars": &graphql.Field{
				Type: graphql.NewList(carType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return cars.ListAvailable(p.Context)
				},
			},
			"car": &graphql.Field{
				Type: carType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					return cars.GetByID(p.Context, id)
				},
			},
			"rentals": &graphql.Field{
				Type: graphql.NewList(rentalType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					list, err := rentals.ListAll(p.Context)
					if err != nil {
						return nil, err
					}
					views := make([]rentalView, 0, len(list))
					for _, r := range list {
						views = append(views, toRentalView(r))
					}
					return views, nil
				},
			},
			"rental": &graphql.Field{
				Type: rentalType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					r, err := rentals.GetByID(p.Context, id)
					if err != nil {
						return nil, err
					}
					return toRentalView(r), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"registerUser": &graphql.Field{
				Type: userPayload,
				Args: graphql.FieldConfigArgument{
					"name":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"nationalId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					name, _ := p.Args["name"].(string)
					email, _ := p.Args["email"].(string)
					nationalID, _ := p.Args["nationalId"].(string)
					pass, _ := p.Args["password"].(string)
					user, err := auth.Register(p.Context, name, email, nationalID, pass)
					if err != nil {
						return nil, err
					}
					return map[string]any{
						"user":    user.Public(),
						"message": "user registered successfully",
					}, nil
				},
			},
			"loginUser": &graphql.Field{
				Type: authPayload,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					email, _ := p.Args["email"].(string)
					pass, _ := p.Args["password"].(string)
					token, user, err := auth.Login(p.Context, email, pass)
					if err != nil {
						return nil, err
					}
					return map[string]any{
						"token":   token,
						"user":    user.Public(),
						"message": "login successful",
					}, nil
				},
			},
			"registerCar": &graphql.Field{
				Type: carPayload,
				Args: graphql.FieldConfigArgument{
					"brand":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"model":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"year":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"plate":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"dailyRate": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					brand, _ := p.Args["brand"].(string)
					model, _ := p.Args["model"].(string)
					year, _ := p.Args["year"].(int)
					plate, _ := p.Args["plate"].(string)
					dailyRate, _ := p.Args["dailyRate"].(float64)
					car, err := cars.Register(p.Context, brand, model, year, plate, dailyRate)
					if err != nil {
						return nil, err
					}
					return map[string]any{
						"car":     car,
						"message": "car registered successfully",
					}, nil
				},
			},
			"createRental": &graphql.Field{
				Type: rentalPayload,
				Args: graphql.FieldConfigArgument{
					"carId":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"startDate":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"expectedEndDate": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					user := UserFromContext(p.Context)
					if user == nil {
						return nil, domain.ErrUnauthenticated
					}
					carID, _ := p.Args["carId"].(string)
					startStr, _ := p.Args["startDate"].(string)
					endStr, _ := p.Args["expectedEndDate"].(string)
					startDate, err := time.Parse(time.RFC3339, startStr)
					if err != nil {
						return nil, err
					}
					expectedEndDate, err := time.Parse(time.RFC3339, endStr)
					if err != nil {
						return nil, err
					}
					rental, err := rentals.Create(p.Context, user.ID, carID, startDate, expectedEndDate)
					if err != nil {
						return nil, err
					}
					return map[string]any{
						"rental":  toRentalView(rental),
						"message": "rental registered successfully",
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
