package index

import (
	"database/sql"
	"fmt"

	"github.com/RecoveryAshes/cursofind/internal/models"
	"github.com/RecoveryAshes/cursofind/internal/utils"
	_ "modernc.org/sqlite"
)

// SQLiteMirror 索引的SQLite镜像
// 每行一个(课程, 词)配对并冗余课程元数据,
// 供SQL侧按词查URL使用,不参与内存检索路径
type SQLiteMirror struct {
	db *sql.DB
}

// OpenSQLiteMirror 打开(或创建)镜像数据库并建表
func OpenSQLiteMirror(dbPath string) (*SQLiteMirror, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败 [%s]: %w", dbPath, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS curso_palabras (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			curso_id TEXT NOT NULL,
			palabra TEXT NOT NULL,
			url TEXT NOT NULL,
			titulo TEXT NOT NULL,
			descripcion TEXT,
			UNIQUE(curso_id, palabra)
		);

		CREATE INDEX IF NOT EXISTS idx_palabra ON curso_palabras(palabra);
		CREATE INDEX IF NOT EXISTS idx_curso_id ON curso_palabras(curso_id);
		CREATE INDEX IF NOT EXISTS idx_curso_palabra ON curso_palabras(curso_id, palabra);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("建表失败: %w", err)
	}

	return &SQLiteMirror{db: db}, nil
}

// Load 将课程字典批量写入镜像表
// 整体在一个事务内完成,重复配对由UNIQUE约束忽略
func (m *SQLiteMirror) Load(dict models.CourseDictionary) (int, error) {
	tx, err := m.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("开启事务失败: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO curso_palabras (curso_id, palabra, url, titulo, descripcion)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("预编译语句失败: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, pair := range dict.Pairs() {
		course := dict[pair.CourseID]
		result, err := stmt.Exec(pair.CourseID, pair.Word, course.URL, course.Title, course.Description)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("插入配对失败 (%s, %s): %w", pair.CourseID, pair.Word, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("提交事务失败: %w", err)
	}

	utils.Infof("📄 SQLite镜像已写入: %d条配对", inserted)
	return inserted, nil
}

// URLsForWord 按词查询包含该词的课程URL列表
// 这是镜像表对外的规范查询: 哪些URL包含词X
func (m *SQLiteMirror) URLsForWord(word string) ([]string, error) {
	rows, err := m.db.Query(`
		SELECT DISTINCT url FROM curso_palabras
		WHERE palabra = ?
		ORDER BY url
	`, word)
	if err != nil {
		return nil, fmt.Errorf("查询失败 [%s]: %w", word, err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("读取结果失败: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// PairCount 返回镜像表中的配对总数
func (m *SQLiteMirror) PairCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM curso_palabras").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("统计失败: %w", err)
	}
	return count, nil
}

// Close 关闭数据库连接
func (m *SQLiteMirror) Close() error {
	return m.db.Close()
}
