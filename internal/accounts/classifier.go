// Package accounts suggests chart-of-accounts entries for purchases by
// matching vendor names and item descriptions against a static keyword
// table. The table data and the matching algorithm are kept separate so
// either can be tested or swapped on its own.
package accounts

import (
	"fmt"
	"strings"
)

// Account is one chart-of-accounts entry with the keywords that map
// free text onto it.
type Account struct {
	Code     string
	Name     string
	Keywords []string
}

// Label formats the account the way it is stored on transactions.
func (a Account) Label() string {
	return fmt.Sprintf("%s - %s", a.Code, a.Name)
}

// ExpenseAccounts is the standard table for small Philippine businesses.
// Order matters: the first keyword hit wins.
var ExpenseAccounts = []Account{
	{Code: "5010", Name: "Purchases", Keywords: []string{"goods", "inventory", "merchandise"}},
	{Code: "5020", Name: "Direct Materials", Keywords: []string{"materials", "raw materials"}},
	{Code: "5030", Name: "Freight-In", Keywords: []string{"freight", "shipping", "delivery fee"}},
	{Code: "6010", Name: "Salaries and Wages", Keywords: []string{"salary", "wages", "payroll"}},
	{Code: "6020", Name: "Employee Benefits", Keywords: []string{"sss", "philhealth", "pagibig", "13th month"}},
	{Code: "6030", Name: "Professional Fees", Keywords: []string{"legal", "accounting", "consultant", "professional"}},
	{Code: "6040", Name: "Rent Expense", Keywords: []string{"rent", "lease", "rental"}},
	{Code: "6045", Name: "Condominium Dues", Keywords: []string{"condo dues", "association dues", "condo", "dmci", "ayala", "megaworld"}},
	{Code: "6050", Name: "Utilities", Keywords: []string{"electricity", "water", "meralco", "maynilad", "pldt", "globe"}},
	{Code: "6060", Name: "Repairs and Maintenance", Keywords: []string{"repair", "maintenance", "fix", "paint"}},
	{Code: "6065", Name: "Cleaning Services", Keywords: []string{"cleaning", "janitorial", "housekeeping", "sanitation"}},
	{Code: "6070", Name: "Supplies Expense", Keywords: []string{"supplies", "office supplies", "stationery"}},
	{Code: "6075", Name: "Groceries and Pantry", Keywords: []string{"grocery", "groceries", "sm supermarket", "robinsons", "puregold", "coffee", "pantry", "snacks"}},
	{Code: "6080", Name: "Fuel and Oil", Keywords: []string{"gas", "gasoline", "diesel", "petron", "shell"}},
	{Code: "6090", Name: "Transportation and Travel", Keywords: []string{"travel", "transportation", "grab", "uber"}},
	{Code: "6095", Name: "Delivery Services", Keywords: []string{"delivery", "courier", "lbc", "jrs", "2go", "lalamove", "grab express", "shipping"}},
	{Code: "6100", Name: "Communication", Keywords: []string{"phone", "internet", "communication", "mobile"}},
	{Code: "6110", Name: "Advertising and Promotion", Keywords: []string{"advertising", "marketing", "promotion", "ads"}},
	{Code: "6120", Name: "Meals and Entertainment", Keywords: []string{"meals", "food", "restaurant", "entertainment"}},
	{Code: "6125", Name: "Memberships and Subscriptions", Keywords: []string{"membership", "subscription", "dues", "club", "association", "spotify", "netflix", "software"}},
	{Code: "6130", Name: "Insurance", Keywords: []string{"insurance", "premium"}},
	{Code: "6140", Name: "Taxes and Licenses", Keywords: []string{"tax", "license", "permit", "registration"}},
	{Code: "6150", Name: "Depreciation", Keywords: []string{"depreciation"}},
	{Code: "6160", Name: "Miscellaneous", Keywords: []string{"miscellaneous", "others", "other"}},
}

// fallbackRule maps a vendor-name fragment to an account when no table
// keyword matched. Evaluated in order.
type fallbackRule struct {
	account   string
	fragments []string
}

var vendorFallbacks = []fallbackRule{
	{account: "6060 - Repairs and Maintenance", fragments: []string{"hardware"}},
	{account: "6070 - Supplies Expense", fragments: []string{"supplies"}},
	{account: "6120 - Meals and Entertainment", fragments: []string{"restaurant", "food"}},
	{account: "6075 - Groceries and Pantry", fragments: []string{"supermarket", "grocery"}},
	{account: "6095 - Delivery Services", fragments: []string{"lbc", "2go", "lalamove"}},
	{account: "6045 - Condominium Dues", fragments: []string{"condo", "property management"}},
	{account: "6065 - Cleaning Services", fragments: []string{"cleaning", "janitorial"}},
}

// Suggest returns the first matching account label for the vendor name
// and item description, or "" when nothing matches. Purely a function of
// its inputs and the static tables.
func Suggest(vendorName, items string) string {
	searchText := strings.ToLower(vendorName + " " + items)

	for _, account := range ExpenseAccounts {
		for _, keyword := range account.Keywords {
			if strings.Contains(searchText, keyword) {
				return account.Label()
			}
		}
	}

	vendor := strings.ToLower(vendorName)
	for _, rule := range vendorFallbacks {
		for _, fragment := range rule.fragments {
			if strings.Contains(vendor, fragment) {
				return rule.account
			}
		}
	}

	return ""
}
