package magento

// Region is the region block of a customer address.
type Region struct {
	Region     string `json:"region"`
	RegionCode string `json:"region_code"`
	RegionID   int    `json:"region_id"`
}

// Address is a customer address as returned by the customers API.
type Address struct {
	ID              int      `json:"id,omitempty"`
	CustomerID      int      `json:"customer_id,omitempty"`
	Region          *Region  `json:"region,omitempty"`
	RegionID        int      `json:"region_id,omitempty"`
	CountryID       string   `json:"country_id"`
	Street          []string `json:"street"`
	Company         string   `json:"company,omitempty"`
	Telephone       string   `json:"telephone"`
	Postcode        string   `json:"postcode"`
	City            string   `json:"city"`
	Firstname       string   `json:"firstname"`
	Lastname        string   `json:"lastname"`
	DefaultShipping bool     `json:"default_shipping,omitempty"`
	DefaultBilling  bool     `json:"default_billing,omitempty"`
}

// Customer is a Magento customer account.
type Customer struct {
	ID              int       `json:"id,omitempty"`
	GroupID         int       `json:"group_id,omitempty"`
	DefaultBilling  string    `json:"default_billing,omitempty"`
	DefaultShipping string    `json:"default_shipping,omitempty"`
	CreatedAt       string    `json:"created_at,omitempty"`
	UpdatedAt       string    `json:"updated_at,omitempty"`
	Email           string    `json:"email"`
	Firstname       string    `json:"firstname"`
	Lastname        string    `json:"lastname"`
	StoreID         int       `json:"store_id,omitempty"`
	WebsiteID       int       `json:"website_id,omitempty"`
	Addresses       []Address `json:"addresses,omitempty"`
}

// CartAddress is the flattened address shape accepted by the cart
// estimation and shipping-information endpoints.
type CartAddress struct {
	Firstname  string   `json:"firstname"`
	Lastname   string   `json:"lastname"`
	Company    string   `json:"company"`
	Postcode   string   `json:"postcode"`
	Email      string   `json:"email"`
	Street     []string `json:"street"`
	Telephone  string   `json:"telephone"`
	CountryID  string   `json:"country_id"`
	City       string   `json:"city"`
	Region     string   `json:"region"`
	RegionCode string   `json:"region_code"`
	RegionID   int      `json:"region_id"`
}

// CartItem is a line in a quote.
type CartItem struct {
	ItemID      int     `json:"item_id,omitempty"`
	SKU         string  `json:"sku"`
	Qty         float64 `json:"qty"`
	Name        string  `json:"name,omitempty"`
	Price       float64 `json:"price,omitempty"`
	ProductType string  `json:"product_type,omitempty"`
	QuoteID     string  `json:"quote_id"`
}

// ShippingMethod is a carrier/method pair quoted for a cart.
type ShippingMethod struct {
	CarrierCode  string  `json:"carrier_code"`
	MethodCode   string  `json:"method_code"`
	CarrierTitle string  `json:"carrier_title"`
	MethodTitle  string  `json:"method_title"`
	Amount       float64 `json:"amount"`
	BaseAmount   float64 `json:"base_amount"`
	Available    bool    `json:"available"`
	ErrorMessage string  `json:"error_message,omitempty"`
	PriceExclTax float64 `json:"price_excl_tax"`
	PriceInclTax float64 `json:"price_incl_tax"`
}

// PaymentMethod is a payment method available for a cart.
type PaymentMethod struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// CartTotals holds the totals computed after shipping information is set.
type CartTotals struct {
	GrandTotal        float64 `json:"grand_total"`
	Subtotal          float64 `json:"subtotal"`
	ShippingAmount    float64 `json:"shipping_amount"`
	TaxAmount         float64 `json:"tax_amount"`
	ItemsQty          float64 `json:"items_qty"`
	QuoteCurrencyCode string  `json:"quote_currency_code"`
}

// PaymentDetails is returned after shipping information is attached to a cart.
type PaymentDetails struct {
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	Totals         CartTotals      `json:"totals"`
}

// OrderItem is a line of a placed order.
type OrderItem struct {
	ItemID      int     `json:"item_id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	QtyOrdered  float64 `json:"qty_ordered"`
	Price       float64 `json:"price"`
	ProductType string  `json:"product_type"`
	IsVirtual   int     `json:"is_virtual"`
}

// Order is a placed sales order.
type Order struct {
	EntityID          int         `json:"entity_id"`
	IncrementID       string      `json:"increment_id"`
	QuoteID           int         `json:"quote_id"`
	State             string      `json:"state"`
	Status            string      `json:"status"`
	CustomerID        int         `json:"customer_id"`
	CustomerEmail     string      `json:"customer_email"`
	CustomerFirstname string      `json:"customer_firstname"`
	CustomerLastname  string      `json:"customer_lastname"`
	GrandTotal        float64     `json:"grand_total"`
	Subtotal          float64     `json:"subtotal"`
	OrderCurrencyCode string      `json:"order_currency_code"`
	IsVirtual         int         `json:"is_virtual"`
	TotalItemCount    int         `json:"total_item_count"`
	TotalQtyOrdered   float64     `json:"total_qty_ordered"`
	CreatedAt         string      `json:"created_at"`
	UpdatedAt         string      `json:"updated_at"`
	Items             []OrderItem `json:"items"`
}

// OrderComment is a status-history entry appended to an order.
type OrderComment struct {
	Comment        string
	Status         string
	NotifyCustomer bool
	VisibleOnFront bool
}

// ImageContent is the base64 payload of a media gallery entry.
type ImageContent struct {
	Base64EncodedData string `json:"base64_encoded_data"`
	Type              string `json:"type"`
	Name              string `json:"name"`
}

// MediaGalleryEntry is a product image or video.
type MediaGalleryEntry struct {
	ID        int           `json:"id,omitempty"`
	MediaType string        `json:"media_type"`
	Label     string        `json:"label"`
	Position  int           `json:"position"`
	Disabled  bool          `json:"disabled"`
	Types     []string      `json:"types"`
	File      string        `json:"file,omitempty"`
	Content   *ImageContent `json:"content,omitempty"`
}

// Product is a catalog product.
type Product struct {
	ID                  int                 `json:"id"`
	SKU                 string              `json:"sku"`
	Name                string              `json:"name"`
	AttributeSetID      int                 `json:"attribute_set_id"`
	Price               float64             `json:"price"`
	Status              int                 `json:"status"`
	Visibility          int                 `json:"visibility"`
	TypeID              string              `json:"type_id"`
	Weight              float64             `json:"weight,omitempty"`
	CreatedAt           string              `json:"created_at"`
	UpdatedAt           string              `json:"updated_at"`
	MediaGalleryEntries []MediaGalleryEntry `json:"media_gallery_entries,omitempty"`
}

// Website is a Magento website.
type Website struct {
	ID             int    `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	DefaultGroupID int    `json:"default_group_id"`
}

// StoreView is a Magento store view.
type StoreView struct {
	ID           int    `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	WebsiteID    int    `json:"website_id"`
	StoreGroupID int    `json:"store_group_id"`
	IsActive     int    `json:"is_active"`
}

// StoreGroup is a Magento store (group of store views).
type StoreGroup struct {
	ID             int    `json:"id"`
	WebsiteID      int    `json:"website_id"`
	RootCategoryID int    `json:"root_category_id"`
	DefaultStoreID int    `json:"default_store_id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
}
