package ui

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/me/invdash/pkg/model"
)

// HandleDashboard renders the headline numbers and category breakdowns.
func (ui *UI) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	ctx := r.Context()

	data := map[string]any{
		"Title":   "Dashboard - invdash",
		"Session": sess,
	}

	productCount, err := ui.api.CountProducts(ctx)
	if ui.redirectIfSessionLost(w, r, err) {
		return
	}
	summary, err := ui.api.SalesSummary(ctx)
	if ui.redirectIfSessionLost(w, r, err) {
		return
	}
	productsByCategory, err := ui.api.CountProductsByCategory(ctx)
	if ui.redirectIfSessionLost(w, r, err) {
		return
	}
	salesByCategory, err := ui.api.SalesByCategory(ctx)
	if ui.redirectIfSessionLost(w, r, err) {
		return
	}

	data["ProductCount"] = productCount
	data["Summary"] = summary
	data["ProductsByCategory"] = productsByCategory
	data["SalesByCategory"] = salesByCategory
	if err != nil {
		data["Error"] = actionErrorText(err)
	}
	ui.render(w, "dashboard", data)
}

// HandleProducts renders the catalog with create/edit forms.
func (ui *UI) HandleProducts(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	products, err := ui.api.ListProducts(r.Context())
	if ui.redirectIfSessionLost(w, r, err) {
		return
	}

	data := map[string]any{
		"Title":    "Products - invdash",
		"Session":  sess,
		"Products": products,
	}
	if err != nil {
		data["Error"] = actionErrorText(err)
	}
	if msg := r.URL.Query().Get("error"); msg != "" {
		data["Error"] = msg
	}
	ui.render(w, "products", data)
}

// HandleProductCreate processes the add-product form.
func (ui *UI) HandleProductCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	stock, _ := strconv.Atoi(r.FormValue("stock_quantity"))
	product := model.Product{
		Name:          r.FormValue("name"),
		Brand:         r.FormValue("brand"),
		Category:      r.FormValue("category"),
		Price:         price,
		StockQuantity: stock,
	}

	err := ui.api.CreateProduct(r.Context(), product)
	ui.finishAction(w, r, "/products", err)
}

// HandleProductUpdate processes the edit form for one product.
func (ui *UI) HandleProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	stock, _ := strconv.Atoi(r.FormValue("stock_quantity"))
	product := model.Product{
		ID:            id,
		Name:          r.FormValue("name"),
		Brand:         r.FormValue("brand"),
		Category:      r.FormValue("category"),
		Price:         price,
		StockQuantity: stock,
	}

	ui.finishAction(w, r, "/products", ui.api.UpdateProduct(r.Context(), product))
}

// HandleProductDelete removes one product.
func (ui *UI) HandleProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	ui.finishAction(w, r, "/products", ui.api.DeleteProduct(r.Context(), id))
}

// HandleSales renders recorded sales and the record-sale form.
func (ui *UI) HandleSales(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	ctx := r.Context()

	sales, err := ui.api.ListSales(ctx)
	if ui.redirectIfSessionLost(w, r, err) {
		return
	}
	products, err := ui.api.ListProducts(ctx)
	if ui.redirectIfSessionLost(w, r, err) {
		return
	}

	data := map[string]any{
		"Title":    "Sales - invdash",
		"Session":  sess,
		"Sales":    sales,
		"Products": products,
	}
	if msg := r.URL.Query().Get("error"); msg != "" {
		data["Error"] = msg
	}
	ui.render(w, "sales", data)
}

// HandleSaleRecord processes the record-sale form.
func (ui *UI) HandleSaleRecord(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	productID, _ := strconv.Atoi(r.FormValue("product_id"))
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	ui.finishAction(w, r, "/sales", ui.api.RecordSale(r.Context(), productID, quantity))
}

// HandleSettings renders user administration.
func (ui *UI) HandleSettings(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	users, err := ui.api.ListUsers(r.Context())
	if ui.redirectIfSessionLost(w, r, err) {
		return
	}

	data := map[string]any{
		"Title":   "Settings - invdash",
		"Session": sess,
		"Users":   users,
	}
	if err != nil {
		data["Error"] = actionErrorText(err)
	}
	if msg := r.URL.Query().Get("error"); msg != "" {
		data["Error"] = msg
	}
	ui.render(w, "settings", data)
}

// HandleUserAdd processes the add-user form.
func (ui *UI) HandleUserAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	role := r.FormValue("role")
	if role == "" {
		role = string(model.RoleStaff)
	}
	err := ui.api.AddUser(r.Context(), r.FormValue("username"), r.FormValue("email"), r.FormValue("password"), role)
	ui.finishAction(w, r, "/settings", err)
}

// HandleUserRole processes a promote/demote action.
func (ui *UI) HandleUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ui.finishAction(w, r, "/settings", ui.api.UpdateUserRole(r.Context(), id, r.FormValue("role")))
}

// finishAction completes a form submission: redirect back on success,
// redirect to login when the session is gone, otherwise redirect back
// with an inline error message.
func (ui *UI) finishAction(w http.ResponseWriter, r *http.Request, back string, err error) {
	if ui.redirectIfSessionLost(w, r, err) {
		return
	}
	if err != nil {
		ui.logger.Warn("action failed", "path", r.URL.Path, "error", err)
		http.Redirect(w, r, back+"?error="+url.QueryEscape(actionErrorText(err)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// redirectIfSessionLost sends the visitor to the login page when the
// session was torn down by a failed refresh. The gateway has already
// cleared the tokens by the time this error is observed.
func (ui *UI) redirectIfSessionLost(w http.ResponseWriter, r *http.Request, err error) bool {
	if !model.IsRefreshFailed(err) {
		return false
	}
	target := r.URL.Path
	http.Redirect(w, r, "/login?next="+url.QueryEscape(target), http.StatusSeeOther)
	return true
}

// actionErrorText maps an API error to the inline message shown above
// the affected view.
func actionErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case model.IsForbidden(err):
		return "You do not have permission to do that."
	case model.IsNetwork(err):
		return "Something went wrong. Please try again."
	default:
		return err.Error()
	}
}
