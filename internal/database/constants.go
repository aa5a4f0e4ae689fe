package database

// VibeTagSeparator delimits labels in a name's vibe membership string.
const VibeTagSeparator = ","
