package report

import (
	"sort"

	"backuplens/internal/model"
)

// LastBackups 计算"最近一次备份"视图
//
// 两阶段：先在对象明细表上逆序扫描，每个 (作业, 对象) 键首次出现的
// 记录即该对象的最近备份；再以这批对象记录的 (日期, 作业) 对为准，
// 从备份表中为每对取启动时间最晚的一条作业记录。作业记录的入选由
// 对象层面的"最近"决定，而不是简单按作业名取最大日期。
func LastBackups(backups []model.BackupRecord, objects []model.ObjectRecord) (lastBackups []model.BackupRecord, lastObjects []model.ObjectRecord) {
	type objKey struct{ job, object string }
	seen := make(map[objKey]bool)

	for i := len(objects) - 1; i >= 0; i-- {
		o := objects[i]
		k := objKey{o.Job, o.Object}
		if seen[k] {
			continue
		}
		seen[k] = true
		lastObjects = append(lastObjects, o)
	}

	sort.SliceStable(lastObjects, func(i, j int) bool {
		if !lastObjects[i].Date.Equal(lastObjects[j].Date) {
			return lastObjects[i].Date.Before(lastObjects[j].Date)
		}
		return lastObjects[i].Job < lastObjects[j].Job
	})

	seenPair := make(map[string]bool)
	for _, o := range lastObjects {
		pk := o.Date.Format("2006-01-02") + "\x00" + o.Job
		if seenPair[pk] {
			continue
		}
		seenPair[pk] = true

		var best *model.BackupRecord
		for i := range backups {
			b := &backups[i]
			if b.Job != o.Job || !b.Date.Equal(o.Date) {
				continue
			}
			if best == nil || b.StartTime > best.StartTime {
				best = b
			}
		}
		if best != nil {
			lastBackups = append(lastBackups, *best)
		}
	}

	return lastBackups, lastObjects
}

// JobObjects 建立作业到对象列表的索引（首次出现顺序）
func JobObjects(backups []model.BackupRecord, objects []model.ObjectRecord) *model.JobObjectIndex {
	ix := model.NewJobObjectIndex()
	for _, b := range backups {
		ix.AddJob(b.Job)
	}
	for _, o := range objects {
		ix.Add(o.Job, o.Object)
	}
	return ix
}
