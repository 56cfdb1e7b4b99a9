package core_test

import "strconv"

func itoa(id int32) string {
	return strconv.Itoa(int(id))
}
