package model

import "time"

// JobObjectIndex 作业到对象列表的索引，保持首次出现顺序
type JobObjectIndex struct {
	jobs    []string
	objects map[string][]string
}

// NewJobObjectIndex 创建空索引
func NewJobObjectIndex() *JobObjectIndex {
	return &JobObjectIndex{objects: make(map[string][]string)}
}

// AddJob 登记作业（幂等）
func (ix *JobObjectIndex) AddJob(job string) {
	if _, ok := ix.objects[job]; !ok {
		ix.jobs = append(ix.jobs, job)
		ix.objects[job] = nil
	}
}

// Add 登记作业下的对象（幂等，保持插入顺序）
func (ix *JobObjectIndex) Add(job, object string) {
	ix.AddJob(job)
	for _, o := range ix.objects[job] {
		if o == object {
			return
		}
	}
	ix.objects[job] = append(ix.objects[job], object)
}

// Jobs 返回作业列表（首次出现顺序）
func (ix *JobObjectIndex) Jobs() []string {
	out := make([]string, len(ix.jobs))
	copy(out, ix.jobs)
	return out
}

// Objects 返回指定作业的对象列表
func (ix *JobObjectIndex) Objects(job string) []string {
	src := ix.objects[job]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Contains 判断 (job, object) 是否在索引中
func (ix *JobObjectIndex) Contains(job, object string) bool {
	for _, o := range ix.objects[job] {
		if o == object {
			return true
		}
	}
	return false
}

// SourceFile 已摄取的报表文件信息
type SourceFile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Sheets  int    `json:"sheets"`
	Backups int    `json:"backups"`
	Objects int    `json:"objects"`
	Dropped int    `json:"dropped"`
}

// Tables 归一化后的全部表
type Tables struct {
	Backups     []BackupRecord   `json:"backups"`
	Objects     []ObjectRecord   `json:"objects"`
	Execution   []ExecutionEntry `json:"execution"`
	LastBackups []BackupRecord   `json:"lastBackups"`
	LastObjects []ObjectRecord   `json:"lastObjects"`
	Index       *JobObjectIndex  `json:"-"`
}

// DateBounds 返回备份表的最早/最晚日期
func (t *Tables) DateBounds() (min, max time.Time) {
	for _, r := range t.Backups {
		if min.IsZero() || r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}
