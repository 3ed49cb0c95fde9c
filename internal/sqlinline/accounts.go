package sqlinline

const QCreditAccount = `--sql 9574e025-d96d-4f1a-a03c-3e506f0c42fe
insert into accounts(id, balance, updated_at)
values ($1::text, $2::bigint, now())
on conflict (id) do update
set balance    = accounts.balance + excluded.balance,
    updated_at = now();
`

const QInsertPayout = `--sql ae5f1617-25a5-4eed-a9b9-209cef053c41
insert into payouts(campaign_id, beneficiary, amount, paid_at)
values ($1::int, $2::text, $3::bigint, now());
`

const QAccountBalance = `--sql 76594a78-03fd-4ddd-8827-893077d164d5
select balance
from accounts
where id = $1::text;
`

const QListPaidCampaignIDs = `--sql 4e795653-5c25-4c5b-9baf-c567849ad34f
select distinct campaign_id
from payouts
order by campaign_id;
`
