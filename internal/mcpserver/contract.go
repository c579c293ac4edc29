package mcpserver

// SnippetFormat describes the snippet record for LLM consumers that capture
// or read snippets through the tools.
const SnippetFormat = `# codevault snippet format

A snippet is one record of the collection:

| field       | type             | notes                                              |
|-------------|------------------|----------------------------------------------------|
| id          | positive integer | assigned by codevault, never reused after deletion |
| tag         | string           | required; short kebab-case label, e.g. http-get    |
| description | string or null   | optional one-line summary                          |
| code        | string           | required; stored byte-for-byte                     |
| language    | string or null   | optional; drives highlighting and export extension |
| timestamp   | string           | local capture time, "2006-01-02 15:04:05.000000000 -07:00" |

## Rules

1. Use the language names reported by list_languages so highlighting works.
2. Do not put commas in tags: filters split on commas.
3. Filters are case-insensitive substring matches; several comma-separated
   terms in one filter are OR-ed, different filters are AND-ed.
`
