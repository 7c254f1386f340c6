package repositories

type migration struct {
	version int
	sql     string
}

// migrations holds the ordered schema steps per driver. Users and teams mirror the identity
// service; tasks, activities, comments and notifications are owned here.
var migrations = map[string][]migration{
	"postgres": {
		{
			version: 1,
			sql: `
CREATE TABLE IF NOT EXISTS users (
	id               BIGSERIAL PRIMARY KEY,
	full_name        TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL DEFAULT '',
	telegram_chat_id BIGINT NOT NULL DEFAULT 0,
	notify_telegram  BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS teams (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	lead_id    BIGINT NOT NULL REFERENCES users(id),
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS team_members (
	team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	PRIMARY KEY (team_id, user_id)
);

CREATE TABLE IF NOT EXISTS tasks (
	id           BIGSERIAL PRIMARY KEY,
	team_id      BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
	assignee_id  BIGINT NOT NULL REFERENCES users(id),
	title        VARCHAR(200) NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	priority     TEXT NOT NULL,
	status       TEXT NOT NULL,
	start_date   TIMESTAMPTZ,
	due_date     TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ,
	version      BIGINT NOT NULL DEFAULT 1,
	CHECK ((status = 'done') = (completed_at IS NOT NULL))
);
CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id);
CREATE INDEX IF NOT EXISTS idx_tasks_team ON tasks(team_id);

CREATE TABLE IF NOT EXISTS activities (
	id          BIGSERIAL PRIMARY KEY,
	task_id     BIGINT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	author_id   BIGINT NOT NULL REFERENCES users(id),
	description TEXT NOT NULL,
	image_url   TEXT,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_task ON activities(task_id);

CREATE TABLE IF NOT EXISTS comments (
	id                BIGSERIAL PRIMARY KEY,
	activity_id       BIGINT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
	parent_comment_id BIGINT REFERENCES comments(id) ON DELETE CASCADE,
	author_id         BIGINT NOT NULL REFERENCES users(id),
	content           VARCHAR(1000) NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comments_activity ON comments(activity_id);

CREATE TABLE IF NOT EXISTS notifications (
	id             BIGSERIAL PRIMARY KEY,
	target_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	message        TEXT NOT NULL,
	link           TEXT NOT NULL DEFAULT '',
	is_read        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_target ON notifications(target_user_id, created_at DESC);
`,
		},
	},
	"sqlite": {
		{
			version: 1,
			sql: `
CREATE TABLE IF NOT EXISTS users (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name        TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL DEFAULT '',
	telegram_chat_id INTEGER NOT NULL DEFAULT 0,
	notify_telegram  BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS teams (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	lead_id    INTEGER NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS team_members (
	team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	PRIMARY KEY (team_id, user_id)
);

CREATE TABLE IF NOT EXISTS tasks (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	team_id      INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
	assignee_id  INTEGER NOT NULL REFERENCES users(id),
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	priority     TEXT NOT NULL,
	status       TEXT NOT NULL,
	start_date   DATETIME,
	due_date     DATETIME,
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL,
	completed_at DATETIME,
	version      INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id);
CREATE INDEX IF NOT EXISTS idx_tasks_team ON tasks(team_id);

CREATE TABLE IF NOT EXISTS activities (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id     INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	author_id   INTEGER NOT NULL REFERENCES users(id),
	description TEXT NOT NULL,
	image_url   TEXT,
	created_at  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_task ON activities(task_id);

CREATE TABLE IF NOT EXISTS comments (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	activity_id       INTEGER NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
	parent_comment_id INTEGER REFERENCES comments(id) ON DELETE CASCADE,
	author_id         INTEGER NOT NULL REFERENCES users(id),
	content           TEXT NOT NULL,
	created_at        DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comments_activity ON comments(activity_id);

CREATE TABLE IF NOT EXISTS notifications (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	target_user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	message        TEXT NOT NULL,
	link           TEXT NOT NULL DEFAULT '',
	is_read        BOOLEAN NOT NULL DEFAULT 0,
	created_at     DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_target ON notifications(target_user_id, created_at);
`,
		},
	},
}
