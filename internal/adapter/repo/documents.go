package repo

import (
	"fmt"
	"time"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Persistence shapes (kept out of domain).

type productDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Category    string               `bson:"category"`
	Image       string               `bson:"image"`
	Stock       int                  `bson:"stock"`
	Rating      float64              `bson:"rating"`
	CreatedAt   time.Time            `bson:"createdAt"`
}

type lineItemDoc struct {
	Product   primitive.ObjectID   `bson:"product"`
	Name      string               `bson:"name"`
	Quantity  int                  `bson:"quantity"`
	UnitPrice primitive.Decimal128 `bson:"unitPrice"`
	Price     primitive.Decimal128 `bson:"price"`
	Image     string               `bson:"image"`
}

type addressDoc struct {
	FullName   string `bson:"fullName"`
	Address    string `bson:"address"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	PostalCode string `bson:"postalCode"`
	Phone      string `bson:"phone"`
	Email      string `bson:"email"`
}

type orderDoc struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	User            primitive.ObjectID   `bson:"user"`
	Items           []lineItemDoc        `bson:"items"`
	ShippingAddress addressDoc           `bson:"shippingAddress"`
	PaymentMethod   string               `bson:"paymentMethod"`
	TotalPrice      primitive.Decimal128 `bson:"totalPrice"`
	Status          string               `bson:"status"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

type accountDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// objectID maps malformed ids to ErrNotFound: such a document cannot exist.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, usecase.ErrNotFound
	}
	return oid, nil
}

// toDecimal128 is exact or fails; a value Decimal128 cannot hold is never rounded.
func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, ok := primitive.ParseDecimal128FromBigInt(d.Coefficient(), int(d.Exponent()))
	if !ok {
		return primitive.Decimal128{}, fmt.Errorf("%s does not fit decimal128", d.String())
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	coef, exp, err := v.BigInt()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("decimal128 %s: %w", v.String(), err)
	}
	return decimal.NewFromBigInt(coef, int32(exp)), nil
}

func newProductDoc(p domain.Product) (productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDoc{}, fmt.Errorf("product %q price: %w", p.Name, err)
	}
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Category:    p.Category,
		Image:       p.Image,
		Stock:       p.Stock,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
	}, nil
}

func (d productDoc) toDomain() (domain.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s price: %w", d.ID.Hex(), err)
	}
	return domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Category:    d.Category,
		Image:       d.Image,
		Stock:       d.Stock,
		Rating:      d.Rating,
		CreatedAt:   d.CreatedAt,
	}, nil
}

func newOrderDoc(o domain.Order) (orderDoc, error) {
	user, err := primitive.ObjectIDFromHex(o.UserID)
	if err != nil {
		return orderDoc{}, err
	}
	items := make([]lineItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return orderDoc{}, err
		}
		unit, err := toDecimal128(it.UnitPrice)
		if err != nil {
			return orderDoc{}, fmt.Errorf("line %s unit price: %w", it.ProductID, err)
		}
		price, err := toDecimal128(it.Price)
		if err != nil {
			return orderDoc{}, fmt.Errorf("line %s price: %w", it.ProductID, err)
		}
		items = append(items, lineItemDoc{
			Product:   pid,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			Price:     price,
			Image:     it.Image,
		})
	}
	total, err := toDecimal128(o.TotalPrice)
	if err != nil {
		return orderDoc{}, fmt.Errorf("total price: %w", err)
	}
	a := o.ShippingAddress
	return orderDoc{
		User:  user,
		Items: items,
		ShippingAddress: addressDoc{
			FullName:   a.FullName,
			Address:    a.Address,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Phone:      a.Phone,
			Email:      a.Email,
		},
		PaymentMethod: string(o.PaymentMethod),
		TotalPrice:    total,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.CreatedAt,
	}, nil
}

func (d orderDoc) toDomain() (domain.Order, error) {
	items := make([]domain.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		unit, err := fromDecimal128(it.UnitPrice)
		if err != nil {
			return domain.Order{}, fmt.Errorf("order %s line unit price: %w", d.ID.Hex(), err)
		}
		price, err := fromDecimal128(it.Price)
		if err != nil {
			return domain.Order{}, fmt.Errorf("order %s line price: %w", d.ID.Hex(), err)
		}
		items = append(items, domain.LineItem{
			ProductID: it.Product.Hex(),
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			Price:     price,
			Image:     it.Image,
		})
	}
	total, err := fromDecimal128(d.TotalPrice)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %s total: %w", d.ID.Hex(), err)
	}
	a := d.ShippingAddress
	return domain.Order{
		ID:     d.ID.Hex(),
		UserID: d.User.Hex(),
		Items:  items,
		ShippingAddress: domain.ShippingAddress{
			FullName:   a.FullName,
			Address:    a.Address,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Phone:      a.Phone,
			Email:      a.Email,
		},
		PaymentMethod: domain.PaymentMethod(d.PaymentMethod),
		TotalPrice:    total,
		Status:        domain.Status(d.Status),
		CreatedAt:     d.CreatedAt,
	}, nil
}

func (d accountDoc) toDomain() domain.Account {
	role, err := domain.ParseRole(d.Role)
	if err != nil {
		role = domain.RoleUser
	}
	return domain.Account{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         role,
		CreatedAt:    d.CreatedAt,
	}
}
