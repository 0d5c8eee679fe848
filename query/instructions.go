package query

// Instructions documents the search syntax for the calling agent. It is
// embedded in the full_text_search tool description so an LLM caller
// can construct well-formed queries without out-of-band docs.
const Instructions = `
Instructions for generating a query:

1. Boolean Operators:
   - AND: term1 AND term2 (both required)
   - OR: term1 OR term2 (either term)
   - Multiple words default to OR operation (cloud network = cloud OR network)
   - AND takes precedence over OR
   - Example: Shabath AND (walk OR go)

2. Field-specific Terms:
   - Field-specific terms: field:term
   - Example: text:אדם AND reference:בראשית
   - available fields: text, reference, topics, title
   - text contains the text of the document
   - reference contains the citation of the document, e.g. בראשית, פרק א
   - topics contains the topics of the document, e.g. תנך, הלכה, מדרש

3. Required/Excluded Terms:
   - Required (+): +term (must contain)
   - Excluded (-): -term (must not contain)
   - Example: +security cloud -deprecated
   - Equivalent to: security AND cloud AND NOT deprecated

4. Phrase Search:
   - Use quotes: "exact phrase"
   - Both single/double quotes work
   - Escape quotes with \"
   - Slop operator: "term1 term2"~N
   - Example: "cloud security"~2
   - Prefix matching: "start of phrase"*

5. Wildcards:
   - ? for single character
   - * for any number of characters
   - Example: sec?rity cloud*

6. Special Features:
   - All docs: *
   - Boost terms: term^2.0 (positive numbers only)
   - Example: security^2.0 cloud

Query Examples:
1. Basic: +שבת +חולה +אסור
2. Field-specific: text:סיני AND topics:תנך
3. Phrase with slop: "security framework"~2
4. Complex: +reference:בראשית +text:"הבל"^2.0 +(דמי OR דמים) -הבלים
5. Mixed: (text:"רבנו משה"^2.0 OR reference:"משנה תורה") AND topics:הלכה

Tips:
- Group complex expressions with parentheses
- Use quotes for exact phrases
- Add + for required terms, - for excluded terms
- Boost important terms with ^N
- Use field-specific terms for better results.
`
