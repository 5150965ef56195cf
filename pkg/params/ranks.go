package params

// Ranked parameters, such as time constraints and ACIS windows, are stored
// column-wise: each parameter holds one list with an entry per rank. The
// helpers here flip between that shape and one record per rank.

// RankCount returns the longest list among the named columns. Scalar or
// missing values count as a single rank.
func RankCount(record map[string]interface{}, columns []string) int {
	count := 0
	for _, col := range columns {
		v, ok := record[col]
		if !ok || v == nil {
			continue
		}
		if list, isList := v.([]interface{}); isList {
			if len(list) > count {
				count = len(list)
			}
		} else if count < 1 {
			count = 1
		}
	}
	return count
}

// Rows reorients column-wise ranked values into one map per rank. Columns
// shorter than the rank count pad with nil.
func Rows(record map[string]interface{}, columns []string) []map[string]interface{} {
	n := RankCount(record, columns)
	rows := make([]map[string]interface{}, n)
	for i := range rows {
		rows[i] = make(map[string]interface{}, len(columns))
	}
	for _, col := range columns {
		v := record[col]
		list, isList := v.([]interface{})
		for i := 0; i < n; i++ {
			switch {
			case isList && i < len(list):
				rows[i][col] = list[i]
			case !isList && i == 0:
				rows[i][col] = v
			default:
				rows[i][col] = nil
			}
		}
	}
	return rows
}

// Columns reorients rank records back into column-wise lists.
func Columns(rows []map[string]interface{}, columns []string) map[string]interface{} {
	out := make(map[string]interface{}, len(columns))
	for _, col := range columns {
		list := make([]interface{}, len(rows))
		for i, row := range rows {
			list[i] = row[col]
		}
		out[col] = list
	}
	return out
}
