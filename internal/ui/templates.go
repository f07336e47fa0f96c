package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"time"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04:05")
	},
	"money": func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	},
}

// render writes a page composed from the layout and the named content
// template.
func (ui *UI) render(w http.ResponseWriter, name string, data map[string]any) {
	content, ok := templates[name]
	if !ok {
		ui.logger.Error("template not found", "name", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(templates["layout"])
	if err == nil {
		_, err = tmpl.New("content").Parse(content)
	}
	if err != nil {
		ui.logger.Error("template parse failed", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		ui.logger.Error("template render failed", "name", name, "error", err)
	}
}

// templates holds all template content.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 min-h-screen">
    {{if .Session}}{{if .Session.IsAuthenticated}}
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/dashboard" class="flex items-center px-2 py-2 text-xl font-bold text-blue-600">invdash</a>
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                        <a href="/dashboard" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Dashboard</a>
                        <a href="/products" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Products</a>
                        <a href="/sales" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Sales</a>
                        {{if .Session.IsAdmin}}
                        <a href="/settings" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Settings</a>
                        {{end}}
                    </div>
                </div>
                <div class="flex items-center">
                    <span class="text-sm text-gray-500 mr-4">{{.Session.User.Username}}</span>
                    <a href="/logout" class="text-sm text-gray-500 hover:text-gray-700">Logout</a>
                </div>
            </div>
        </div>
    </nav>
    {{end}}{{end}}

    <main class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{if .Error}}<p class="text-red-500 text-sm text-center mb-4">{{.Error}}</p>{{end}}
        {{if .Message}}<p class="text-green-600 text-sm text-center mb-4">{{.Message}}</p>{{end}}
        {{template "content" .}}
    </main>
</body>
</html>`,

	"loading": `{{define "content"}}
<div class="flex items-center justify-center h-screen">
    <p class="text-gray-500">Loading...</p>
</div>
<meta http-equiv="refresh" content="1">
{{end}}`,

	"forbidden": `{{define "content"}}
<div class="text-center py-12">
    <h2 class="text-2xl font-bold mb-2">Forbidden</h2>
    <p class="text-gray-500">Admin access required.</p>
</div>
{{end}}`,

	"login": `{{define "content"}}
<div class="flex items-center justify-center">
    <div class="bg-white p-6 rounded-lg shadow-lg w-96">
        <h2 class="text-2xl font-bold mb-4 text-center">Login</h2>
        <form method="POST" action="/login" class="space-y-4">
            <input type="hidden" name="next" value="{{.Next}}">
            <input type="email" name="email" placeholder="Email" required
                   class="w-full p-3 border border-gray-300 rounded-lg">
            <input type="password" name="password" placeholder="Password" required
                   class="w-full p-3 border border-gray-300 rounded-lg">
            <button type="submit" class="w-full bg-blue-600 text-white p-2 rounded hover:bg-blue-700">Login</button>
        </form>
        <p class="text-sm text-center mt-4">
            <a href="/forgot-password" class="text-blue-600 hover:underline">Forgot password?</a>
        </p>
    </div>
</div>
{{end}}`,

	"signup": `{{define "content"}}
<div class="flex items-center justify-center">
    <div class="bg-white p-6 rounded-lg shadow-lg w-96">
        <h2 class="text-2xl font-bold mb-4 text-center">Sign up</h2>
        <form method="POST" action="/signup" class="space-y-4">
            <input type="text" name="username" placeholder="Username" required
                   class="w-full p-3 border border-gray-300 rounded-lg">
            <input type="email" name="email" placeholder="Email" required
                   class="w-full p-3 border border-gray-300 rounded-lg">
            <input type="password" name="password" placeholder="Password" required
                   class="w-full p-3 border border-gray-300 rounded-lg">
            <button type="submit" class="w-full bg-blue-600 text-white p-2 rounded hover:bg-blue-700">Create account</button>
        </form>
    </div>
</div>
{{end}}`,

	"forgot": `{{define "content"}}
<div class="flex items-center justify-center">
    <div class="bg-white p-6 rounded-lg shadow-lg w-96">
        <h2 class="text-2xl font-bold mb-4 text-center">Forgot password</h2>
        <form method="POST" action="/forgot-password" class="space-y-4">
            <input type="email" name="email" placeholder="Email" required
                   class="w-full p-3 border border-gray-300 rounded-lg">
            <button type="submit" class="w-full bg-blue-600 text-white p-2 rounded hover:bg-blue-700">Send reset link</button>
        </form>
    </div>
</div>
{{end}}`,

	"dashboard": `{{define "content"}}
<h1 class="text-2xl font-bold mb-6">Dashboard</h1>
<div class="grid grid-cols-1 sm:grid-cols-3 gap-4 mb-8">
    <div class="bg-white p-6 rounded-lg shadow">
        <p class="text-sm text-gray-500">Products</p>
        <p class="text-3xl font-bold">{{.ProductCount}}</p>
    </div>
    <div class="bg-white p-6 rounded-lg shadow">
        <p class="text-sm text-gray-500">Total revenue</p>
        <p class="text-3xl font-bold">{{money .Summary.TotalRevenue}}</p>
    </div>
    <div class="bg-white p-6 rounded-lg shadow">
        <p class="text-sm text-gray-500">Sales</p>
        <p class="text-3xl font-bold">{{.Summary.TotalSales}}</p>
    </div>
</div>
<div class="grid grid-cols-1 sm:grid-cols-2 gap-4">
    <div class="bg-white p-6 rounded-lg shadow">
        <h2 class="font-bold mb-2">Products by category</h2>
        <table class="w-full text-sm">
            {{range .ProductsByCategory}}<tr><td class="py-1">{{.Category}}</td><td class="text-right">{{.Count}}</td></tr>{{end}}
        </table>
    </div>
    <div class="bg-white p-6 rounded-lg shadow">
        <h2 class="font-bold mb-2">Sales by category</h2>
        <table class="w-full text-sm">
            {{range .SalesByCategory}}<tr><td class="py-1">{{.Category}}</td><td class="text-right">{{.Count}}</td></tr>{{end}}
        </table>
    </div>
</div>
{{end}}`,

	"products": `{{define "content"}}
<h1 class="text-2xl font-bold mb-6">Products</h1>
<div class="bg-white rounded-lg shadow overflow-hidden mb-8">
    <table class="w-full text-sm">
        <thead class="bg-gray-100 text-left">
            <tr><th class="p-3">Name</th><th class="p-3">Brand</th><th class="p-3">Category</th><th class="p-3">Price</th><th class="p-3">Stock</th><th class="p-3"></th></tr>
        </thead>
        <tbody>
        {{range .Products}}
            <tr class="border-t">
                <td class="p-3">{{.Name}}</td>
                <td class="p-3">{{.Brand}}</td>
                <td class="p-3">{{.Category}}</td>
                <td class="p-3">{{money .Price}}</td>
                <td class="p-3">{{.StockQuantity}}</td>
                <td class="p-3 text-right">
                    <form method="POST" action="/products/{{.ID}}/delete" class="inline">
                        <button type="submit" class="text-red-600 hover:underline">Delete</button>
                    </form>
                </td>
            </tr>
        {{end}}
        </tbody>
    </table>
</div>
<div class="bg-white p-6 rounded-lg shadow w-full sm:w-96">
    <h2 class="font-bold mb-4">Add product</h2>
    <form method="POST" action="/products" class="space-y-3">
        <input type="text" name="name" placeholder="Name" required class="w-full p-2 border rounded">
        <input type="text" name="brand" placeholder="Brand" class="w-full p-2 border rounded">
        <input type="text" name="category" placeholder="Category" required class="w-full p-2 border rounded">
        <input type="number" step="0.01" name="price" placeholder="Price" required class="w-full p-2 border rounded">
        <input type="number" name="stock_quantity" placeholder="Stock" class="w-full p-2 border rounded">
        <button type="submit" class="w-full bg-blue-600 text-white p-2 rounded hover:bg-blue-700">Add</button>
    </form>
</div>
{{end}}`,

	"sales": `{{define "content"}}
<h1 class="text-2xl font-bold mb-6">Sales</h1>
<div class="bg-white p-6 rounded-lg shadow w-full sm:w-96 mb-8">
    <h2 class="font-bold mb-4">Record sale</h2>
    <form method="POST" action="/sales" class="space-y-3">
        <select name="product_id" required class="w-full p-2 border rounded">
            {{range .Products}}<option value="{{.ID}}">{{.Name}} ({{money .Price}})</option>{{end}}
        </select>
        <input type="number" name="quantity" min="1" value="1" required class="w-full p-2 border rounded">
        <button type="submit" class="w-full bg-blue-600 text-white p-2 rounded hover:bg-blue-700">Record</button>
    </form>
</div>
<div class="bg-white rounded-lg shadow overflow-hidden">
    <table class="w-full text-sm">
        <thead class="bg-gray-100 text-left">
            <tr><th class="p-3">Product</th><th class="p-3">Qty</th><th class="p-3">Price at sale</th><th class="p-3">Total</th><th class="p-3">When</th></tr>
        </thead>
        <tbody>
        {{range .Sales}}
            <tr class="border-t">
                <td class="p-3">{{.ProductName}}</td>
                <td class="p-3">{{.Quantity}}</td>
                <td class="p-3">{{money .PriceAtSale}}</td>
                <td class="p-3">{{money .TotalPrice}}</td>
                <td class="p-3">{{formatTime .Timestamp}}</td>
            </tr>
        {{end}}
        </tbody>
    </table>
</div>
{{end}}`,

	"settings": `{{define "content"}}
<h1 class="text-2xl font-bold mb-6">Settings</h1>
<div class="bg-white rounded-lg shadow overflow-hidden mb-8">
    <table class="w-full text-sm">
        <thead class="bg-gray-100 text-left">
            <tr><th class="p-3">Username</th><th class="p-3">Email</th><th class="p-3">Role</th><th class="p-3"></th></tr>
        </thead>
        <tbody>
        {{range .Users}}
            <tr class="border-t">
                <td class="p-3">{{.Username}}</td>
                <td class="p-3">{{.Email}}</td>
                <td class="p-3">{{.Role}}</td>
                <td class="p-3 text-right">
                    {{if .IsAdmin}}
                    <form method="POST" action="/settings/users/{{.ID}}/role" class="inline">
                        <input type="hidden" name="role" value="staff">
                        <button type="submit" class="text-gray-600 hover:underline">Demote</button>
                    </form>
                    {{else}}
                    <form method="POST" action="/settings/users/{{.ID}}/role" class="inline">
                        <input type="hidden" name="role" value="admin">
                        <button type="submit" class="text-blue-600 hover:underline">Promote</button>
                    </form>
                    {{end}}
                </td>
            </tr>
        {{end}}
        </tbody>
    </table>
</div>
<div class="bg-white p-6 rounded-lg shadow w-full sm:w-96">
    <h2 class="font-bold mb-4">Add user</h2>
    <form method="POST" action="/settings/users" class="space-y-3">
        <input type="text" name="username" placeholder="Username" required class="w-full p-2 border rounded">
        <input type="email" name="email" placeholder="Email" required class="w-full p-2 border rounded">
        <input type="password" name="password" placeholder="Password" required class="w-full p-2 border rounded">
        <select name="role" class="w-full p-2 border rounded">
            <option value="staff">staff</option>
            <option value="admin">admin</option>
        </select>
        <button type="submit" class="w-full bg-blue-600 text-white p-2 rounded hover:bg-blue-700">Add user</button>
    </form>
</div>
{{end}}`,
}
