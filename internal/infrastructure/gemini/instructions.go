package gemini

// RecommendationInstruction asks for group-buy product suggestions. The
// response is schema-constrained to a JSON string array, so the prompt only
// has to pin down count, language and specificity.
const RecommendationInstruction = `Suggest %d specific, trending product names for a group-buy request based on this user query: %q.
The user is looking to buy something from abroad. Return the product names in Traditional Chinese (Taiwan usage).
Return only the product names as a JSON array of strings.`

// DescriptionInstruction writes the leader editor's sales blurb. The length
// cap keeps it inside a product card.
const DescriptionInstruction = `為團購商品「%s」（價格 %s）寫一段 30 字以內、吸引人下單的繁體中文文案。只回傳文案本身，不要加引號或前綴。`

// BuyingTipInstruction produces the one-liner shown on the order success
// screen.
const BuyingTipInstruction = `Give a very short, 1-sentence fun fact or buying tip for %q.
Write it in Traditional Chinese (Taiwan usage). Keep it professional yet engaging.`
