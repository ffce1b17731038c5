package service

const timeLayout = "2006-01-02 15:04:05"

// DeletedUserNickname 已注销作者在列表/详情中展示的占位昵称
const DeletedUserNickname = "已注销用户"

// clampLimit 非法或缺省回落默认值，超出上限截断
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
