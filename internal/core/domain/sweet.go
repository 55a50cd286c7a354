package domain

import "time"

type Sweet struct {
	ID          ID
	Name        string
	Category    string
	Price       Amount
	Quantity    int
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewSweet(name, category string, price Amount, quantity int, description, imageURL string) *Sweet {
	return &Sweet{
		Name:        name,
		Category:    category,
		Price:       price,
		Quantity:    quantity,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// SweetFilter narrows a catalog search. Nil fields are not applied.
type SweetFilter struct {
	Name     *string
	Category *string
	MinPrice *Amount
	MaxPrice *Amount
}

func (f SweetFilter) IsEmpty() bool {
	return f.Name == nil && f.Category == nil && f.MinPrice == nil && f.MaxPrice == nil
}

// SweetPatch is a partial administrative update. Quantity is deliberately
// absent: stock only moves through Purchase and Restock, so an admin edit
// can never race a concurrent purchase back above zero.
type SweetPatch struct {
	Name        *string
	Category    *string
	Price       *Amount
	Description *string
	ImageURL    *string
}

func (p SweetPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Description == nil && p.ImageURL == nil
}

type SweetPurchasedEvent struct {
	SweetID   ID        `json:"sweet_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Remaining int       `json:"remaining"`
	BuyerID   ID        `json:"buyer_id,omitempty"`
	At        time.Time `json:"at"`
}

func (e *SweetPurchasedEvent) GetName() string {
	return "sweet.purchased"
}

func (e *SweetPurchasedEvent) GetEntityName() string {
	return "sweet"
}

func NewSweetPurchasedEvent(sweet *Sweet, quantity int, buyerID ID) *SweetPurchasedEvent {
	return &SweetPurchasedEvent{
		SweetID:   sweet.ID,
		Name:      sweet.Name,
		Quantity:  quantity,
		Remaining: sweet.Quantity,
		BuyerID:   buyerID,
		At:        time.Now(),
	}
}

type SweetRestockedEvent struct {
	SweetID  ID        `json:"sweet_id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	NewTotal int       `json:"new_total"`
	At       time.Time `json:"at"`
}

func (e *SweetRestockedEvent) GetName() string {
	return "sweet.restocked"
}

func (e *SweetRestockedEvent) GetEntityName() string {
	return "sweet"
}

func NewSweetRestockedEvent(sweet *Sweet, quantity int) *SweetRestockedEvent {
	return &SweetRestockedEvent{
		SweetID:  sweet.ID,
		Name:     sweet.Name,
		Quantity: quantity,
		NewTotal: sweet.Quantity,
		At:       time.Now(),
	}
}
