package naga

var MemoKey = (*Factory).memoKey
