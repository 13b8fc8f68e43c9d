package resident

// Reserved name pool for immigrants. Once exhausted the spawner falls back
// to procedurally generated names with uniqueness retries.
var namePool = []string{
	"Ada Bramble", "Bertram Quill", "Clara Finch", "Dorian Ashe",
	"Elsie Marrow", "Felix Thorn", "Greta Hollow", "Hugo Fenwick",
	"Iris Caldwell", "Jasper Reed", "Kitty Larkspur", "Lionel Grimsby",
	"Mabel Sorrel", "Nestor Pike", "Opal Winters", "Percy Nightingale",
	"Queenie Moss", "Rufus Tallow", "Sibyl Harrow", "Tobias Wren",
}

var givenNames = []string{
	"Alder", "Briar", "Cole", "Della", "Edwin", "Fern", "Gideon", "Hazel",
	"Ivo", "June", "Kester", "Lark", "Milo", "Nell", "Orla", "Pip",
	"Quince", "Rowan", "Sage", "Tansy", "Ursa", "Vern", "Wren", "Yarrow",
}

var surnames = []string{
	"Applethwaite", "Birchall", "Cobblestone", "Dunmore", "Eastgate",
	"Farrow", "Gracewell", "Hollybrook", "Ironside", "Juniper",
	"Kettleworth", "Longmire", "Mossgrove", "Netherby", "Oakhurst",
	"Pemberley", "Quickwater", "Rookwood", "Stonebridge", "Thistledown",
}

// Surname extracts the family name from a full display name.
func Surname(full string) string {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ' ' {
			return full[i+1:]
		}
	}
	return full
}
