package schema

// ColumnType is the semantic type of a column, rendered to engine-specific
// SQL by the dialect.
type ColumnType string

const (
	ColSerialPK  ColumnType = "serial_pk"
	ColInt       ColumnType = "int"
	ColFloat     ColumnType = "float"
	ColText      ColumnType = "text"
	ColBool      ColumnType = "bool"
	ColTimestamp ColumnType = "timestamp"
)

type Column struct {
	Name    string
	Type    ColumnType
	NotNull bool
	Unique  bool
	// Default is a SQL literal valid in both dialects (FALSE, 0, '',
	// CURRENT_TIMESTAMP). Required for NOT NULL columns added to tables
	// with existing rows.
	Default string
	// References is "table(column)", with cascade delete when OnDeleteCascade.
	References      string
	OnDeleteCascade bool
}

type Table struct {
	Name    string
	Columns []Column
}

type Index struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
	// Where makes it a partial index.
	Where string
}

// Tables returns the expected model, in creation order (referenced tables
// first). Reset drops them in reverse.
func Tables() []Table {
	return []Table{
		{
			Name: "users",
			Columns: []Column{
				{Name: "id", Type: ColSerialPK},
				{Name: "username", Type: ColText, NotNull: true, Unique: true},
				{Name: "password_hash", Type: ColText, NotNull: true},
				{Name: "created_at", Type: ColTimestamp, NotNull: true, Default: "CURRENT_TIMESTAMP"},
			},
		},
		{
			Name: "exercises",
			Columns: []Column{
				{Name: "id", Type: ColSerialPK},
				{Name: "name", Type: ColText, NotNull: true, Unique: true},
				{Name: "description", Type: ColText, NotNull: true, Default: "''"},
				{Name: "exercise_type", Type: ColText, NotNull: true, Default: "''"},
				{Name: "is_bodyweight", Type: ColBool, NotNull: true, Default: "FALSE"},
				{Name: "created_at", Type: ColTimestamp, NotNull: true, Default: "CURRENT_TIMESTAMP"},
			},
		},
		{
			Name: "workout_sessions",
			Columns: []Column{
				{Name: "id", Type: ColSerialPK},
				{Name: "user_id", Type: ColInt, NotNull: true, References: "users(id)", OnDeleteCascade: true},
				{Name: "start_time", Type: ColTimestamp, NotNull: true, Default: "CURRENT_TIMESTAMP"},
				{Name: "end_time", Type: ColTimestamp},
			},
		},
		{
			Name: "workout_logs",
			Columns: []Column{
				{Name: "id", Type: ColSerialPK},
				{Name: "session_id", Type: ColInt, NotNull: true, References: "workout_sessions(id)", OnDeleteCascade: true},
				{Name: "exercise_id", Type: ColInt, NotNull: true, References: "exercises(id)"},
				{Name: "set_number", Type: ColInt, NotNull: true},
				{Name: "set_type", Type: ColText, NotNull: true, Default: "'working'"},
				{Name: "reps", Type: ColInt, NotNull: true},
				{Name: "weight", Type: ColFloat, NotNull: true, Default: "0"},
				{Name: "created_at", Type: ColTimestamp, NotNull: true, Default: "CURRENT_TIMESTAMP"},
			},
		},
		{
			Name: "personal_records",
			Columns: []Column{
				{Name: "id", Type: ColSerialPK},
				{Name: "user_id", Type: ColInt, NotNull: true, References: "users(id)", OnDeleteCascade: true},
				{Name: "exercise_id", Type: ColInt, NotNull: true, References: "exercises(id)"},
				{Name: "weight", Type: ColFloat, NotNull: true},
				{Name: "reps", Type: ColInt, NotNull: true},
				{Name: "achieved_at", Type: ColTimestamp, NotNull: true, Default: "CURRENT_TIMESTAMP"},
			},
		},
		{
			Name: "weight_logs",
			Columns: []Column{
				{Name: "id", Type: ColSerialPK},
				{Name: "user_id", Type: ColInt, NotNull: true, References: "users(id)", OnDeleteCascade: true},
				{Name: "weight", Type: ColFloat, NotNull: true},
				{Name: "body_fat_percentage", Type: ColFloat},
				{Name: "visceral_fat", Type: ColFloat},
				{Name: "notes", Type: ColText},
				{Name: "logged_at", Type: ColTimestamp, NotNull: true, Default: "CURRENT_TIMESTAMP"},
			},
		},
		{
			Name: "bloodwork_logs",
			Columns: []Column{
				{Name: "id", Type: ColSerialPK},
				{Name: "user_id", Type: ColInt, NotNull: true, References: "users(id)", OnDeleteCascade: true},
				{Name: "test_date", Type: ColTimestamp, NotNull: true, Default: "CURRENT_TIMESTAMP"},
				{Name: "testosterone_total", Type: ColFloat},
				{Name: "testosterone_free", Type: ColFloat},
				{Name: "shbg", Type: ColFloat},
				{Name: "oestradiol", Type: ColFloat},
				{Name: "prolactin", Type: ColFloat},
				{Name: "hba1c", Type: ColFloat},
				{Name: "glucose_fasting", Type: ColFloat},
				{Name: "insulin_fasting", Type: ColFloat},
				{Name: "homa_index", Type: ColFloat},
				{Name: "notes", Type: ColText},
				{Name: "created_at", Type: ColTimestamp, NotNull: true, Default: "CURRENT_TIMESTAMP"},
			},
		},
		{
			Name: "workout_programs",
			Columns: []Column{
				{Name: "id", Type: ColSerialPK},
				{Name: "user_id", Type: ColInt, NotNull: true, References: "users(id)", OnDeleteCascade: true},
				{Name: "name", Type: ColText, NotNull: true},
				{Name: "description", Type: ColText},
				{Name: "program_type", Type: ColText},
				{Name: "created_at", Type: ColTimestamp, NotNull: true, Default: "CURRENT_TIMESTAMP"},
			},
		},
	}
}

func Indexes() []Index {
	return []Index{
		{Name: "ix_weight_logs_user_id", Table: "weight_logs", Columns: []string{"user_id"}},
		{Name: "ix_weight_logs_logged_at", Table: "weight_logs", Columns: []string{"logged_at"}},
		{Name: "ix_weight_logs_user_logged_at", Table: "weight_logs", Columns: []string{"user_id", "logged_at"}},
		{Name: "ix_workout_sessions_user_id", Table: "workout_sessions", Columns: []string{"user_id"}},
		{Name: "ix_workout_sessions_end_time", Table: "workout_sessions", Columns: []string{"end_time"}},
		{Name: "ix_workout_logs_session_id", Table: "workout_logs", Columns: []string{"session_id"}},
		{Name: "ix_workout_logs_exercise_id", Table: "workout_logs", Columns: []string{"exercise_id"}},
		{Name: "ix_personal_records_user_id", Table: "personal_records", Columns: []string{"user_id"}},
		{Name: "ix_personal_records_exercise_id", Table: "personal_records", Columns: []string{"exercise_id"}},
		{Name: "ix_bloodwork_logs_user_id", Table: "bloodwork_logs", Columns: []string{"user_id"}},
		{Name: "ix_bloodwork_logs_test_date", Table: "bloodwork_logs", Columns: []string{"test_date"}},
		{Name: "ix_bloodwork_logs_user_test_date", Table: "bloodwork_logs", Columns: []string{"user_id", "test_date"}},
		// one record row per user+exercise
		{Name: "ux_personal_records_user_exercise", Table: "personal_records", Columns: []string{"user_id", "exercise_id"}, Unique: true},
		// at most one active session per user
		{Name: "ux_workout_sessions_active", Table: "workout_sessions", Columns: []string{"user_id"}, Unique: true, Where: "end_time IS NULL"},
	}
}
