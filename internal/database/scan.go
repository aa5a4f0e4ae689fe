package database

// NameColumns is the column list ScanName expects, shared by the SQL backends.
const NameColumns = "id, identifier, gender, unisex, vibe_tags, hangul, romanized, meaning"

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// ScanName scans a row selected with NameColumns.
func ScanName(row RowScanner) (*NameRecord, error) {
	var n NameRecord
	var gender string
	if err := row.Scan(&n.ID, &n.Identifier, &gender, &n.Unisex, &n.VibeTags, &n.Hangul, &n.Romanized, &n.Meaning); err != nil {
		return nil, err
	}
	n.Gender = Gender(gender)
	return &n, nil
}

// ScanCompanion scans a row selected as id, identifier, name, category, image_url.
func ScanCompanion(row RowScanner) (*CompanionRecord, error) {
	var c CompanionRecord
	if err := row.Scan(&c.ID, &c.Identifier, &c.Name, &c.Category, &c.ImageURL); err != nil {
		return nil, err
	}
	return &c, nil
}
