package sheets

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
)

// Write actions understood by the script endpoint
const (
	actionAddProduct        = "add"
	actionEditProduct       = "edit"
	actionDeleteProduct     = "delete"
	actionAddOrder          = "addOrder"
	actionUpdateOrderStatus = "updateOrderStatus"
)

// flexID decodes a product id that may arrive as a JSON number or a
// numeric-looking string. Valid reports whether normalization succeeded.
type flexID struct {
	Value int64
	Valid bool
}

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			f.Value = n
			f.Valid = true
		}
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	f.Value = n
	f.Valid = true
	return nil
}

// remotePayload is the object form of a fetch response
type remotePayload struct {
	Products []remoteProduct `json:"products"`
	Orders   []remoteOrder   `json:"orders"`
}

// remoteProduct mirrors the spreadsheet row schema. The embedded image
// travels as imageBase64 on the wire, distinct from the local image
// field; prices may be stringified numbers, which decimal decoding
// accepts either way.
type remoteProduct struct {
	ID          flexID           `json:"id"`
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Image       string           `json:"image"`
	ImageBase64 string           `json:"imageBase64"`
	Category    string           `json:"category"`
	Unit        string           `json:"unit"`
	Description string           `json:"description"`
}

func (r remoteProduct) toProduct() (catalog.Product, bool) {
	if !r.ID.Valid || r.Name == "" {
		return catalog.Product{}, false
	}
	price := decimal.Zero
	if r.Price != nil {
		price = *r.Price
	}
	image := r.Image
	if image == "" {
		image = r.ImageBase64
	}
	return catalog.Product{
		ID:          r.ID.Value,
		Name:        r.Name,
		Price:       price,
		Image:       image,
		Category:    catalog.Category(r.Category),
		Unit:        catalog.Unit(r.Unit),
		Description: r.Description,
	}, true
}

// remoteOrder mirrors the spreadsheet order schema
type remoteOrder struct {
	ID            string             `json:"id"`
	Customer      order.Customer     `json:"customer"`
	Items         []remoteCartItem   `json:"items"`
	Total         *decimal.Decimal   `json:"total"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"paymentMethod"`
	PaymentProof  string             `json:"paymentProofBase64"`
	OrderDate     string             `json:"orderDate"`
}

type remoteCartItem struct {
	ID       flexID           `json:"id"`
	Name     string           `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Category string           `json:"category"`
	Unit     string           `json:"unit"`
	Quantity float64          `json:"quantity"`
}

func (r remoteOrder) toOrder() (order.Order, bool) {
	if r.ID == "" {
		return order.Order{}, false
	}
	total := decimal.Zero
	if r.Total != nil {
		total = *r.Total
	}
	items := make([]catalog.CartItem, 0, len(r.Items))
	for _, it := range r.Items {
		item := catalog.CartItem{Quantity: it.Quantity}
		item.ID = it.ID.Value
		item.Name = it.Name
		if it.Price != nil {
			item.Price = *it.Price
		}
		item.Category = catalog.Category(it.Category)
		item.Unit = catalog.Unit(it.Unit)
		items = append(items, item)
	}

	status := order.Status(r.Status)
	if !status.IsValid() {
		status = order.StatusPending
	}

	placed := time.Time{}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, r.OrderDate); err == nil {
			placed = t
			break
		}
	}

	return order.Order{
		ID:            r.ID,
		Customer:      r.Customer,
		Items:         items,
		Total:         total,
		Status:        status,
		PaymentMethod: order.PaymentMethod(r.PaymentMethod),
		PaymentProof:  r.PaymentProof,
		OrderDate:     placed,
	}, true
}

// productWrite is the POST body for product mutations. Numeric fields are
// stringified and the image travels as imageBase64, matching the remote
// schema rather than the local one.
type productWrite struct {
	Action      string `json:"action"`
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Price       string `json:"price,omitempty"`
	ImageBase64 string `json:"imageBase64,omitempty"`
	Category    string `json:"category,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Description string `json:"description,omitempty"`
}

func newProductWrite(action string, p catalog.Product) productWrite {
	return productWrite{
		Action:      action,
		ID:          strconv.FormatInt(p.ID, 10),
		Name:        p.Name,
		Price:       p.Price.String(),
		ImageBase64: p.Image,
		Category:    string(p.Category),
		Unit:        string(p.Unit),
		Description: p.Description,
	}
}

// orderWrite is the POST body for order mutations
type orderWrite struct {
	Action             string           `json:"action"`
	ID                 string           `json:"id"`
	Customer           order.Customer   `json:"customer,omitempty"`
	Items              []orderWriteItem `json:"items,omitempty"`
	Total              string           `json:"total,omitempty"`
	Status             string           `json:"status,omitempty"`
	PaymentMethod      string           `json:"paymentMethod,omitempty"`
	PaymentProofBase64 string           `json:"paymentProofBase64,omitempty"`
	OrderDate          string           `json:"orderDate,omitempty"`
}

type orderWriteItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
}

func newOrderWrite(o order.Order) orderWrite {
	items := make([]orderWriteItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderWriteItem{
			ID:       strconv.FormatInt(item.ID, 10),
			Name:     item.Name,
			Price:    item.Price.String(),
			Unit:     string(item.Unit),
			Quantity: item.Quantity,
		})
	}
	return orderWrite{
		Action:             actionAddOrder,
		ID:                 o.ID,
		Customer:           o.Customer,
		Items:              items,
		Total:              o.Total.String(),
		Status:             string(o.Status),
		PaymentMethod:      string(o.PaymentMethod),
		PaymentProofBase64: o.PaymentProof,
		OrderDate:          o.OrderDate.UTC().Format(time.RFC3339),
	}
}

type statusWrite struct {
	Action string `json:"action"`
	ID     string `json:"id"`
	Status string `json:"status"`
}
