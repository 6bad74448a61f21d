package store

import (
	"errors"
	"sync"
	"time"

	"backuplens/internal/model"
	"backuplens/internal/report"
)

// ErrNoData 会话中还没有任何已摄取的报表，或过滤结果为空
var ErrNoData = errors.New("no report data")

// Store 会话级内存存储层
//
// 报表数据只在进程生命周期内有效，刷新页面或重启后重新上传。
// 上传表与过滤表分开保存：过滤参数变更时基于上传表重算，
// 上传表本身从不修改。
type Store struct {
	mu sync.RWMutex

	tables   *model.Tables // 上传后合并的全量表
	filtered *model.Tables // 按当前参数过滤后的表
	params   report.Params
	files    []model.SourceFile
	notFound bool // 最近一次上传没有任何合格 Sheet
}

// New 创建空存储
func New() *Store {
	return &Store{}
}

// SetTables 写入一次成功摄取的结果，并以全选参数初始化过滤表
func (s *Store) SetTables(tables *model.Tables, files []model.SourceFile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables = tables
	s.files = files
	s.notFound = false

	from, to := tables.DateBounds()
	s.params = report.Params{
		From:      from,
		To:        to,
		Selection: report.FullSelection(tables.Index),
	}
	s.filtered = report.FilterTables(tables, s.params)
}

// SetNotFound 标记最近一次上传未找到报表
func (s *Store) SetNotFound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notFound = true
}

// NotFound 返回"未找到报表"标记
func (s *Store) NotFound() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notFound
}

// HasData 是否已有摄取数据
func (s *Store) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables != nil
}

// Tables 返回上传后的全量表
func (s *Store) Tables() (*model.Tables, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tables == nil {
		return nil, ErrNoData
	}
	return s.tables, nil
}

// Filtered 返回按当前参数过滤后的表
func (s *Store) Filtered() (*model.Tables, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.filtered == nil {
		return nil, ErrNoData
	}
	if len(s.filtered.Backups) == 0 {
		return nil, ErrNoData
	}
	return s.filtered, nil
}

// Params 返回当前过滤参数
func (s *Store) Params() (report.Params, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tables == nil {
		return report.Params{}, ErrNoData
	}
	return s.params, nil
}

// SetParams 更新过滤参数并重算过滤表
func (s *Store) SetParams(p report.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tables == nil {
		return ErrNoData
	}
	s.params = p
	s.filtered = report.FilterTables(s.tables, p)
	return nil
}

// DateBounds 返回上传数据的日期范围
func (s *Store) DateBounds() (min, max time.Time, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tables == nil {
		return min, max, ErrNoData
	}
	min, max = s.tables.DateBounds()
	return min, max, nil
}

// Year 返回报表数据所属年份（按最晚日期）
func (s *Store) Year() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tables == nil {
		return 0, ErrNoData
	}
	_, max := s.tables.DateBounds()
	return max.Year(), nil
}

// SourceFiles 返回已摄取的文件信息
func (s *Store) SourceFiles() []model.SourceFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SourceFile, len(s.files))
	copy(out, s.files)
	return out
}

// Reset 清空会话数据
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = nil
	s.filtered = nil
	s.params = report.Params{}
	s.files = nil
	s.notFound = false
}
