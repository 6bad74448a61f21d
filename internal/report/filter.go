package report

import (
	"time"

	"backuplens/internal/model"
)

// Selection 作业到所选对象列表的映射；缺项表示该作业整体不选
type Selection map[string][]string

// Params 报表过滤参数
type Params struct {
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Selection Selection `json:"selection"`
}

// FullSelection 根据索引构造全选参数
func FullSelection(ix *model.JobObjectIndex) Selection {
	sel := make(Selection)
	for _, job := range ix.Jobs() {
		sel[job] = ix.Objects(job)
	}
	return sel
}

// Jobs 返回选中的作业列表（至少选中一个对象的作业）
func (s Selection) Jobs() []string {
	out := make([]string, 0, len(s))
	for job, objects := range s {
		if len(objects) > 0 {
			out = append(out, job)
		}
	}
	return out
}

func (s Selection) hasJob(job string) bool {
	return len(s[job]) > 0
}

func (s Selection) hasObject(job, object string) bool {
	for _, o := range s[job] {
		if o == object {
			return true
		}
	}
	return false
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}

// FilterTables 按日期区间与对象选择过滤各表。
// 对象表先按区间和选中对象过滤，备份表再按过滤后对象表中
// 出现的 (日期, 作业) 组合收敛，保证两张表互相一致。
func FilterTables(t *model.Tables, p Params) *model.Tables {
	var objects []model.ObjectRecord
	pairs := make(map[string]bool)
	for _, o := range t.Objects {
		if !inRange(o.Date, p.From, p.To) || !p.Selection.hasObject(o.Job, o.Object) {
			continue
		}
		objects = append(objects, o)
		pairs[o.Date.Format("2006-01-02")+"\x00"+o.Job] = true
	}

	var backups []model.BackupRecord
	for _, b := range t.Backups {
		if pairs[b.Date.Format("2006-01-02")+"\x00"+b.Job] {
			backups = append(backups, b)
		}
	}

	var execution []model.ExecutionEntry
	for _, e := range t.Execution {
		if inRange(e.Date, p.From, p.To) && p.Selection.hasJob(e.Job) {
			execution = append(execution, e)
		}
	}

	lastBackups, lastObjects := FilterLast(t.LastBackups, t.LastObjects, p)

	return &model.Tables{
		Backups:     backups,
		Objects:     objects,
		Execution:   execution,
		LastBackups: lastBackups,
		LastObjects: lastObjects,
		Index:       t.Index,
	}
}

// FilterLast 过滤"最近一次备份"两张表。对象表按选中对象过滤，
// 备份表按留存对象的 (日期, 作业) 组合收敛
func FilterLast(backups []model.BackupRecord, objects []model.ObjectRecord, p Params) ([]model.BackupRecord, []model.ObjectRecord) {
	var keptObjects []model.ObjectRecord
	pairs := make(map[string]bool)
	for _, o := range objects {
		if !p.Selection.hasObject(o.Job, o.Object) {
			continue
		}
		keptObjects = append(keptObjects, o)
		pairs[o.Date.Format("2006-01-02")+"\x00"+o.Job] = true
	}

	var keptBackups []model.BackupRecord
	for _, b := range backups {
		if pairs[b.Date.Format("2006-01-02")+"\x00"+b.Job] {
			keptBackups = append(keptBackups, b)
		}
	}
	return keptBackups, keptObjects
}
