package cache

import "fmt"

// Key layout. Detail entries are keyed per entity; list entries carry
// the page in the key (e.g. products_list_p2), so invalidation deletes
// them by pattern since membership of a list cannot be patched.
const (
	productListPattern  = "products_list*"
	categoryListPattern = "categories_list*"
	orderListPattern    = "orders_list*"
)

func ProductDetailKey(id int64) string  { return fmt.Sprintf("product_detail_%d", id) }
func ProductKey(id int64) string        { return fmt.Sprintf("product_%d", id) }
func CategoryDetailKey(id int64) string { return fmt.Sprintf("category_detail_%d", id) }
func CategoryKey(id int64) string       { return fmt.Sprintf("category_%d", id) }
func OrderDetailKey(id int64) string    { return fmt.Sprintf("order_detail_%d", id) }
func OrderKey(id int64) string          { return fmt.Sprintf("order_%d", id) }

func ProductListKey(page int) string  { return fmt.Sprintf("products_list_p%d", page) }
func CategoryListKey(page int) string { return fmt.Sprintf("categories_list_p%d", page) }

func UserOrdersPattern(userID int64) string { return fmt.Sprintf("user_orders_%d*", userID) }
func UserOrdersPageKey(userID int64, page int) string {
	return fmt.Sprintf("user_orders_%d_p%d", userID, page)
}
