package report

import "backuplens/internal/model"

// MergeRetryRows 合并重试行
//
// 执行表中，某次重试会单独成行：attempt 0 为空、某个更高序号的
// attempt 有值。对这样的行，逐个已填充的 attempt 列，从该行向前
// （时间上最近的在前）找同一作业、该列还空着的最近一行，把启动时间
// 和本行状态并入，然后删除本行。最终状态取最后一次重试的状态。
//
// 找不到任何可并入前行的重试行原样保留，这是可接受的降级行为。
// 输入不被修改，返回新表。
func MergeRetryRows(entries []model.ExecutionEntry) []model.ExecutionEntry {
	rows := make([]model.ExecutionEntry, len(entries))
	for i, e := range entries {
		rows[i] = e
		rows[i].Attempts = cloneAttempts(e.Attempts)
	}

	removed := make(map[int]bool)

	for i := range rows {
		row := rows[i]
		if row.Attempt(0) != "" {
			// 有原始执行的行是合并目标，不是重试行
			continue
		}
		nums := row.AttemptNumbers()
		if len(nums) == 0 {
			continue
		}

		merged := false
		for _, n := range nums {
			// 逆向扫描：最近的前行优先，命中首个结构匹配即止
			for j := i - 1; j >= 0; j-- {
				if rows[j].Job != row.Job || rows[j].Attempt(n) != "" {
					continue
				}
				rows[j].SetAttempt(n, row.Attempt(n))
				rows[j].Status = row.Status
				merged = true
				break
			}
		}
		if merged {
			removed[i] = true
		}
	}

	out := make([]model.ExecutionEntry, 0, len(rows))
	for i, r := range rows {
		if !removed[i] {
			out = append(out, r)
		}
	}
	return out
}

func cloneAttempts(src map[int]string) map[int]string {
	if src == nil {
		return nil
	}
	dst := make(map[int]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
