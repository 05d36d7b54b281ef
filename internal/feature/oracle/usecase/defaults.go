package usecase

// 設定ファイルで上書きされない場合の既定値です。

// DefaultLabels は既定のラベル語彙です。
var DefaultLabels = []string{
	"a mug",
	"a wallet",
	"a fork",
	"a laptop",
	"a phone",
	"a pair of keys",
	"a water bottle",
	"a book",
	"a pair of headphones",
	"a random object",
}

// DefaultCuisines は既定の料理キーワード辞書です。
var DefaultCuisines = []string{
	"ramen", "sushi", "pho", "salad", "soup", "burrito", "taco", "pizza",
	"sandwich", "burger", "curry", "dumplings", "noodles", "bibimbap",
	"falafel", "shawarma", "poke", "bagel", "dim sum", "bento",
}

// DefaultQuestions は既定のリフレクション用の質問文です（text/template形式）。
var DefaultQuestions = []string{
	"Tell me, why is this {{.Label}} important to you?",
	"And what do you cherish most about it?",
}

// DefaultPersona は言語モデルに与える既定のロール指示です。
const DefaultPersona = "You are a mystical oracle that provides symbolic lunch suggestions based on a user's object and reflections."

// DefaultPromptTemplate は既定の指示文テンプレートです（text/template形式）。
const DefaultPromptTemplate = `I presented an object: {{.Label}}. Here's what it means to me: {{join .Reflections " and "}}. ` +
	`What should I eat for lunch? Provide a mystical yet practical suggestion under $20, reflecting values such as trust, comfort, and frugality. ` +
	`Name exactly one of these dishes in your answer: {{join .Cuisines ", "}}.`

// DefaultLocation は既定の検索地点です。
const DefaultLocation = "MIT Media Lab, Cambridge, MA"

// DefaultQualifier はキーワードに付加する既定の修飾語です。
const DefaultQualifier = "restaurant"

// DefaultVenueLimit は既定の店舗数上限です。
const DefaultVenueLimit = 3

// DefaultPriceTiers は既定の価格帯フィルタ（安い・手頃）です。
var DefaultPriceTiers = []int{1, 2}
