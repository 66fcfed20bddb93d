package validation

// Form field names shared by the schemas and the transport layer.
const (
	FieldID         = "id"
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
	FieldDate       = "date"
	FieldEmail      = "email"
	FieldPassword   = "password"
)

// MaxAmount is the largest accepted amount in major units.
const MaxAmount = "21474836.47"

// DateLayout is the calendar date format accepted for invoice dates.
const DateLayout = "2006-01-02"

// InvoiceForm is the base invoice schema. Create and update derive from it so
// both paths report identical messages.
var InvoiceForm = NewSchema(
	Field{Name: FieldID, Kind: String},
	Field{
		Name:    FieldCustomerID,
		Kind:    String,
		Missing: "Please select a customer.",
		Rules:   []Rule{{Tag: "required", Message: "Please select a customer."}},
	},
	Field{
		Name:    FieldAmount,
		Kind:    Number,
		Invalid: "Please enter a valid amount.",
		Rules: []Rule{
			{Tag: "gt=0", Message: "Please enter an amount greater than $0."},
			// Cents are stored in a 32-bit INTEGER column.
			{Tag: "lte=" + MaxAmount, Message: "Please enter an amount no greater than $" + MaxAmount + "."},
			{Tag: "cents", Message: "Amount cannot have more than two decimal places."},
		},
	},
	Field{
		Name:    FieldStatus,
		Kind:    String,
		Missing: "Please select an invoice status.",
		Rules:   []Rule{{Tag: "required,oneof=pending paid", Message: "Please select an invoice status."}},
	},
	Field{
		Name:    FieldDate,
		Kind:    String,
		Missing: "Please enter an invoice date.",
		Rules:   []Rule{{Tag: "omitempty,datetime=" + DateLayout, Message: "Please enter a valid date (YYYY-MM-DD)."}},
	},
)

var (
	// CreateInvoice validates a new invoice; the id is assigned server-side.
	CreateInvoice = InvoiceForm.Omit(FieldID)
	// UpdateInvoice validates an edit; id comes from the route and the
	// original date is kept.
	UpdateInvoice = InvoiceForm.Omit(FieldID, FieldDate)
)

// Credentials is the base shape check for sign-in input.
var Credentials = NewSchema(
	Field{
		Name:    FieldEmail,
		Kind:    String,
		Missing: "Please enter your email.",
		Rules:   []Rule{{Tag: "email", Message: "Please enter a valid email."}},
	},
	Field{
		Name:    FieldPassword,
		Kind:    String,
		Missing: "Please enter your password.",
		Rules:   []Rule{{Tag: "min=6", Message: "Password must be at least 6 characters."}},
	},
)
