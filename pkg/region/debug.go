package region

import (
	"fmt"

	"github.com/valyala/bytebufferpool"
)

// DebugString renders a one-line summary of the region's state for logs and
// test failure messages.
func (r *Region) DebugString() string {
	if r.closed.Load() {
		return fmt.Sprintf("region %s: closed", r.path)
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "region %s: size=%d cursor=%#x remaining=%d base=%#x",
		r.path, len(r.mem), r.cursor.Load(), r.Remaining(), r.DataBase())
	r.mu.Lock()
	for size, q := range r.free {
		fmt.Fprintf(buf, " free[%d]=%d", size, q.Len())
	}
	r.mu.Unlock()
	return buf.String()
}
