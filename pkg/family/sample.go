package family

// Sample returns the built-in fourteen-person dataset used by the CLI's
// --sample flag and throughout the test suite. The tree is deliberately
// tangled: several couples share children, and "Alice" can be reached from
// "Bob" through two equally short ancestor chains.
//
// The returned records are canonical (no Unknown sentinels) and freshly
// allocated on every call, so callers may modify them freely.
func Sample() []Record {
	return []Record{
		{Name: "Alice", Father: "Arlo", Mother: "Madeline", Children: []string{}},
		{Name: "Bob", Father: "Charlie", Mother: "Eve", Children: []string{}},
		{Name: "Eve", Father: "Oliver", Mother: "Aurora", Children: []string{"Bob"}},
		{Name: "Charlie", Father: "Jack", Mother: "Luna", Children: []string{"Bob"}},
		{Name: "Madeline", Father: "Jack", Mother: "Aurora", Children: []string{"Alice"}},
		{Name: "Arlo", Father: "Oscar", Mother: "Isla", Children: []string{"Alice"}},
		{Name: "Oliver", Father: "Hugo", Mother: "Rose", Children: []string{"Eve"}},
		{Name: "Luna", Father: "Oscar", Mother: "Isla", Children: []string{"Charlie"}},
		{Name: "Aurora", Father: "Hugo", Mother: "Rose", Children: []string{"Eve", "Madeline"}},
		{Name: "Jack", Father: "Oscar", Mother: "Rose", Children: []string{"Charlie", "Madeline"}},
		{Name: "Hugo", Children: []string{"Oliver", "Aurora"}},
		{Name: "Rose", Children: []string{"Oliver", "Aurora", "Jack"}},
		{Name: "Isla", Children: []string{"Luna", "Arlo"}},
		{Name: "Oscar", Children: []string{"Luna", "Jack", "Arlo"}},
	}
}
