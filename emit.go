package syscallmd

import (
	"bufio"
	"io"
	"strconv"
)

const (
	signatureMacro = "SYSCALL_SIGNATURE"
	paramMacro     = "SYSCALL_PARAM"
	endMacro       = "SYSCALL_END"

	anonymousParamName = "ANON"
)

// The generated header has to be included after <sys/syscall.h>, the
// __NR_* guards are meaningless otherwise.
const headerPreamble = `#ifndef __NR_write
  #error __NR_write missing: you have to include <sys/syscall.h> before you can use this
#endif

#ifndef SYSCALL_SIGNATURE
  #define SYSCALL_SIGNATURE(NUM, RETTYPE, NAME, NUM_PARAMS, ...) /* empty */
#endif

#ifndef SYSCALL_PARAM
  #define SYSCALL_PARAM(POS, TYPE, NAME, IS_USER_PTR) /* empty */
#endif

#ifndef SYSCALL_END
  #define SYSCALL_END(NUM, RETTYPE, NAME, NUM_PARAMS, ...) /* empty */
#endif
`

const headerTrailer = `
#undef SYSCALL_SIGNATURE
#undef SYSCALL_PARAM
#undef SYSCALL_END
`

// EmitHeader writes an X-macro header for calls to w. For every call the
// includer gets a SYSCALL_SIGNATURE, one SYSCALL_PARAM per parameter (1-based
// position) and a SYSCALL_END, guarded by the call's __NR_* macro.
func EmitHeader(w io.Writer, calls []SystemCall) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(headerPreamble)
	for _, call := range calls {
		bw.WriteString("\n#ifdef " + call.NumberMacro() + "\n")

		bw.WriteString("\t")
		writeSignature(bw, signatureMacro, call)
		bw.WriteString("\n")

		for i, param := range call.Params {
			name := param.Name
			if param.IsAnonymous() {
				name = anonymousParamName
			}
			userPtr := "0"
			if param.IsUserPointer() {
				userPtr = "1"
			}
			bw.WriteString("\t" + paramMacro + "(" + strconv.Itoa(i+1) + ", " + param.Type + ", " + name + ", " + userPtr + ")\n")
		}

		bw.WriteString("\t")
		writeSignature(bw, endMacro, call)
		bw.WriteString("\n")

		bw.WriteString("#endif\n")
	}
	bw.WriteString(headerTrailer)

	// bufio.Writer keeps the first write error and returns it here.
	return bw.Flush()
}

func writeSignature(bw *bufio.Writer, macro string, call SystemCall) {
	bw.WriteString(macro + "(" + call.NumberMacro() + ", " + call.Name + ", " + strconv.Itoa(call.NumParams()))
	for _, param := range call.Params {
		bw.WriteString(", " + param.Type)
		if !param.IsAnonymous() {
			bw.WriteString(" /* " + param.Name + " */")
		}
	}
	bw.WriteString(")")
}
