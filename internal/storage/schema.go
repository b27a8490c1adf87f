package storage

// Schema is applied on every open; all statements are idempotent.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS hands (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    hand_id       TEXT NOT NULL UNIQUE,
    tournament_id TEXT NOT NULL DEFAULT '',
    game_type     TEXT NOT NULL DEFAULT '',
    played_at     TIMESTAMP,
    small_blind   REAL NOT NULL DEFAULT 0,
    big_blind     REAL NOT NULL DEFAULT 0,
    ante          REAL NOT NULL DEFAULT 0,
    pot           REAL NOT NULL DEFAULT 0,
    rake          REAL NOT NULL DEFAULT 0,
    board         TEXT NOT NULL DEFAULT '',
    table_name    TEXT NOT NULL DEFAULT '',
    max_seats     INTEGER NOT NULL DEFAULT 0,
    button_seat   INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_hands_played_at ON hands(played_at);
CREATE INDEX IF NOT EXISTS idx_hands_tournament ON hands(tournament_id);

CREATE TABLE IF NOT EXISTS participants (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    hand_id        TEXT NOT NULL REFERENCES hands(hand_id) ON DELETE CASCADE,
    player_name    TEXT NOT NULL,
    seat           INTEGER NOT NULL,
    stack          REAL NOT NULL DEFAULT 0,
    bounty         REAL NOT NULL DEFAULT 0,
    cards          TEXT NOT NULL DEFAULT '',
    showed_cards   INTEGER NOT NULL DEFAULT 0,
    is_button      INTEGER NOT NULL DEFAULT 0,
    is_small_blind INTEGER NOT NULL DEFAULT 0,
    is_big_blind   INTEGER NOT NULL DEFAULT 0,
    net_profit     REAL NOT NULL DEFAULT 0,
    UNIQUE(hand_id, player_name)
);

CREATE INDEX IF NOT EXISTS idx_participants_player ON participants(player_name);

CREATE TABLE IF NOT EXISTS actions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    hand_id     TEXT NOT NULL REFERENCES hands(hand_id) ON DELETE CASCADE,
    sequence    INTEGER NOT NULL,
    player_name TEXT NOT NULL,
    kind        TEXT NOT NULL,
    street      TEXT NOT NULL,
    amount      REAL NOT NULL DEFAULT 0,
    has_amount  INTEGER NOT NULL DEFAULT 0,
    all_in      INTEGER NOT NULL DEFAULT 0,
    UNIQUE(hand_id, sequence)
);

CREATE INDEX IF NOT EXISTS idx_actions_player ON actions(player_name);

CREATE TABLE IF NOT EXISTS pots (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    hand_id  TEXT NOT NULL REFERENCES hands(hand_id) ON DELETE CASCADE,
    pot_type TEXT NOT NULL,
    amount   REAL NOT NULL DEFAULT 0,
    UNIQUE(hand_id, pot_type)
);

CREATE TABLE IF NOT EXISTS pot_winners (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    hand_id     TEXT NOT NULL REFERENCES hands(hand_id) ON DELETE CASCADE,
    pot_type    TEXT NOT NULL,
    player_name TEXT NOT NULL,
    amount      REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS returned_bets (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    hand_id     TEXT NOT NULL REFERENCES hands(hand_id) ON DELETE CASCADE,
    player_name TEXT NOT NULL,
    amount      REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS hand_files (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    path         TEXT NOT NULL UNIQUE,
    status       TEXT NOT NULL,
    hands_count  INTEGER NOT NULL DEFAULT 0,
    error        TEXT NOT NULL DEFAULT '',
    processed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notes (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    player_name TEXT NOT NULL UNIQUE,
    label_id    TEXT NOT NULL DEFAULT '',
    text        TEXT NOT NULL DEFAULT '',
    updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS note_labels (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    label_id TEXT NOT NULL UNIQUE,
    color    TEXT NOT NULL DEFAULT '',
    name     TEXT NOT NULL DEFAULT ''
);
`
